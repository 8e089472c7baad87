package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares a report's canonical snapshot against the
// golden file testdata/golden/{name}.golden.
//
// Golden files are the source of truth for expected report output; to
// regenerate them run:
//
//	go test ./internal/report -update
//
// Deterministic snapshots require the run to use a fixed run ID and a
// frozen clock (see the testutil package).
func AssertGolden(t *testing.T, name string, r *Report) error {
	t.Helper()

	data, err := MarshalCanonical(r.Snapshot())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
