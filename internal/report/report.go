// Package report models the outcome of a probe run and renders it for
// humans, machines, and golden snapshots.
package report

import (
	"fmt"
	"io"
	"time"
)

// Outcome is the verdict for a single scenario.
type Outcome struct {
	// Scenario is the scenario name (or file name when loading failed).
	Scenario string `json:"scenario"`

	// Pass indicates the scenario passed all checks.
	Pass bool `json:"pass"`

	// Code categorizes the failure (CONFIG_ERROR, TRANSPORT_ERROR,
	// STATUS_ERROR, SHAPE_ERROR). Empty on pass.
	Code string `json:"code,omitempty"`

	// Message is the diagnostic for a failed scenario. Empty on pass.
	Message string `json:"message,omitempty"`

	// Status is the HTTP status received, 0 if no response arrived.
	Status int `json:"status,omitempty"`

	// DurationMS is the wall-clock time the scenario took.
	DurationMS int64 `json:"duration_ms"`
}

// Report is the outcome of one probe run over a scenario set.
type Report struct {
	RunID      string    `json:"run_id"`
	BaseURL    string    `json:"base_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
}

// Add appends an outcome and updates the counters.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Pass {
		r.Passed++
	} else {
		r.Failed++
	}
}

// Total returns the number of scenarios in the run.
func (r *Report) Total() int {
	return len(r.Outcomes)
}

// Ok reports whether every scenario passed.
func (r *Report) Ok() bool {
	return r.Failed == 0
}

// WriteText renders the report for terminal output: one ✓/✗ line per
// scenario, failure diagnostics indented underneath, then a summary.
func (r *Report) WriteText(w io.Writer) {
	for _, o := range r.Outcomes {
		if o.Pass {
			fmt.Fprintf(w, "✓ %s (%dms)\n", o.Scenario, o.DurationMS)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", o.Scenario)
		fmt.Fprintf(w, "  [%s] %s\n", o.Code, o.Message)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Probe Summary: %d passed, %d failed, %d total\n",
		r.Passed, r.Failed, r.Total())
	if r.Ok() {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
}

// Snapshot converts the report to plain maps for canonical
// serialization. Timestamps are rendered as RFC 3339 strings so the
// snapshot stays byte-stable across architectures.
func (r *Report) Snapshot() map[string]any {
	outcomes := make([]any, len(r.Outcomes))
	for i, o := range r.Outcomes {
		m := map[string]any{
			"scenario":    o.Scenario,
			"pass":        o.Pass,
			"duration_ms": o.DurationMS,
		}
		if o.Code != "" {
			m["code"] = o.Code
		}
		if o.Message != "" {
			m["message"] = o.Message
		}
		if o.Status != 0 {
			m["status"] = o.Status
		}
		outcomes[i] = m
	}

	return map[string]any{
		"run_id":      r.RunID,
		"base_url":    r.BaseURL,
		"started_at":  r.StartedAt.UTC().Format(time.RFC3339),
		"finished_at": r.FinishedAt.UTC().Format(time.RFC3339),
		"passed":      r.Passed,
		"failed":      r.Failed,
		"outcomes":    outcomes,
	}
}
