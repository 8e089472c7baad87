package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := &Report{
		RunID:      "run-00000000-0000-0000-0000-000000000001",
		BaseURL:    "https://api.example.test",
		StartedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	r.Add(Outcome{
		Scenario:   "server-time",
		Pass:       true,
		Status:     200,
		DurationMS: 12,
	})
	r.Add(Outcome{
		Scenario: "open-orders",
		Code:     "CONFIG_ERROR",
		Message:  "authenticated scenario needs credentials (KRAKEN_API_KEY, KRAKEN_API_SECRET)",
	})
	return r
}

func TestAdd_UpdatesCounters(t *testing.T) {
	r := sampleReport()

	assert.Equal(t, 2, r.Total())
	assert.Equal(t, 1, r.Passed)
	assert.Equal(t, 1, r.Failed)
	assert.False(t, r.Ok())
}

func TestOk_AllPassed(t *testing.T) {
	r := &Report{}
	r.Add(Outcome{Scenario: "a", Pass: true})
	r.Add(Outcome{Scenario: "b", Pass: true})
	assert.True(t, r.Ok())
}

func TestWriteText_MixedOutcomes(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteText(&buf)

	out := buf.String()
	assert.Contains(t, out, "✓ server-time (12ms)\n")
	assert.Contains(t, out, "✗ open-orders\n")
	assert.Contains(t, out, "  [CONFIG_ERROR] authenticated scenario needs credentials")
	assert.Contains(t, out, "Probe Summary: 1 passed, 1 failed, 2 total\n")
	assert.NotContains(t, out, "All scenarios passed")
}

func TestWriteText_AllPassed(t *testing.T) {
	r := &Report{}
	r.Add(Outcome{Scenario: "server-time", Pass: true, Status: 200, DurationMS: 5})

	var buf bytes.Buffer
	r.WriteText(&buf)

	assert.Contains(t, buf.String(), "✓ All scenarios passed\n")
}

func TestSnapshot_OmitsEmptyFields(t *testing.T) {
	snap := sampleReport().Snapshot()

	outcomes, ok := snap["outcomes"].([]any)
	require.True(t, ok)
	require.Len(t, outcomes, 2)

	passed := outcomes[0].(map[string]any)
	assert.NotContains(t, passed, "code")
	assert.NotContains(t, passed, "message")
	assert.Equal(t, 200, passed["status"])

	failed := outcomes[1].(map[string]any)
	assert.Equal(t, "CONFIG_ERROR", failed["code"])
	assert.NotContains(t, failed, "status")
}

func TestSnapshot_TimestampsAreRFC3339UTC(t *testing.T) {
	r := &Report{
		StartedAt:  time.Date(2024, 3, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)),
		FinishedAt: time.Date(2024, 3, 1, 13, 0, 1, 0, time.FixedZone("CET", 3600)),
	}

	snap := r.Snapshot()
	assert.Equal(t, "2024-03-01T12:00:00Z", snap["started_at"])
	assert.Equal(t, "2024-03-01T12:00:01Z", snap["finished_at"])
}

func TestGolden_ProbeRun(t *testing.T) {
	require.NoError(t, AssertGolden(t, "probe_run", sampleReport()))
}
