// Package probe executes scenarios against the exchange and produces
// per-scenario verdicts.
//
// Each scenario runs in isolation: it owns its request and response,
// and its failure never aborts the remaining scenarios. Failures are
// recovered at the scenario boundary as coded outcomes; the only
// cross-cutting propagation is the report's pass/fail summary.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tlind/krakenprobe/internal/kraken"
	"github.com/tlind/krakenprobe/internal/report"
	"github.com/tlind/krakenprobe/internal/scenario"
	"github.com/tlind/krakenprobe/internal/shape"
)

// Config configures a Runner.
type Config struct {
	// Client issues the HTTP requests. Required.
	Client *kraken.Client

	// BaseURL is recorded in the report for traceability.
	BaseURL string

	// Credentials for authenticated scenarios. May be incomplete; an
	// authenticated scenario then fails with CONFIG_ERROR before any
	// network call.
	Credentials kraken.Credentials

	// Parallel bounds concurrent scenarios. Values below 2 mean
	// sequential execution.
	Parallel int

	// RunID generates the report's run identifier.
	// Defaults to UUIDv7Generator.
	RunID IDGenerator

	// Now supplies wall-clock time. Defaults to time.Now.
	// Tests inject a frozen clock for deterministic reports.
	Now func() time.Time

	// Logger receives per-scenario progress. Defaults to a discard
	// logger.
	Logger *slog.Logger
}

// Runner executes scenario sets.
type Runner struct {
	client   *kraken.Client
	baseURL  string
	creds    kraken.Credentials
	parallel int
	runID    IDGenerator
	now      func() time.Time
	logger   *slog.Logger
}

// New creates a Runner from cfg.
func New(cfg Config) *Runner {
	r := &Runner{
		client:   cfg.Client,
		baseURL:  cfg.BaseURL,
		creds:    cfg.Credentials,
		parallel: cfg.Parallel,
		runID:    cfg.RunID,
		now:      cfg.Now,
		logger:   cfg.Logger,
	}
	if r.runID == nil {
		r.runID = UUIDv7Generator{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run executes all scenarios and returns the report.
//
// Outcome order matches scenario order regardless of parallelism: each
// scenario's slot is assigned up front, so reports and golden
// snapshots stay stable.
func (r *Runner) Run(ctx context.Context, scenarios []*scenario.Scenario) *report.Report {
	rep := &report.Report{
		RunID:     r.runID.Generate(),
		BaseURL:   r.baseURL,
		StartedAt: r.now(),
	}

	outcomes := make([]report.Outcome, len(scenarios))

	if r.parallel > 1 {
		sem := make(chan struct{}, r.parallel)
		var wg sync.WaitGroup
		for i, sc := range scenarios {
			wg.Add(1)
			go func(i int, sc *scenario.Scenario) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				outcomes[i] = r.runOne(ctx, sc)
			}(i, sc)
		}
		wg.Wait()
	} else {
		for i, sc := range scenarios {
			outcomes[i] = r.runOne(ctx, sc)
		}
	}

	for _, o := range outcomes {
		rep.Add(o)
	}
	rep.FinishedAt = r.now()

	r.logger.Info("run finished",
		"run_id", rep.RunID,
		"passed", rep.Passed,
		"failed", rep.Failed,
	)
	return rep
}

// runOne executes a single scenario: config check, request, status
// check, envelope decode, shape dispatch.
func (r *Runner) runOne(ctx context.Context, sc *scenario.Scenario) report.Outcome {
	start := r.now()

	resp, err := r.execute(ctx, sc)

	o := report.Outcome{
		Scenario:   sc.Name,
		DurationMS: r.now().Sub(start).Milliseconds(),
	}
	if resp != nil {
		o.Status = resp.Status
	}

	if err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			// Should not happen; keep the diagnostic either way.
			pe = newError(CodeTransport, sc.Name, err.Error(), err)
		}
		o.Code = string(pe.Code)
		o.Message = pe.Message
		r.logger.Warn("scenario failed",
			"scenario", sc.Name,
			"code", o.Code,
			"message", o.Message,
		)
		return o
	}

	o.Pass = true
	r.logger.Info("scenario passed",
		"scenario", sc.Name,
		"status", o.Status,
		"duration_ms", o.DurationMS,
	)
	return o
}

// execute runs the scenario pipeline and returns the response (when one
// arrived) alongside any failure.
func (r *Runner) execute(ctx context.Context, sc *scenario.Scenario) (*kraken.Response, error) {
	tag := shape.Tag(sc.Expect.Shape)
	if !shape.Known(tag) {
		return nil, newError(CodeConfig, sc.Name,
			fmt.Sprintf("unknown shape tag %q", sc.Expect.Shape), shape.ErrUnknownTag)
	}

	// Credentials are checked before any network call is attempted.
	if sc.Request.Auth && !r.creds.Complete() {
		return nil, newError(CodeConfig, sc.Name,
			fmt.Sprintf("authenticated scenario needs credentials (%s, %s)",
				kraken.EnvAPIKey, kraken.EnvAPISecret), nil)
	}

	var resp *kraken.Response
	var err error
	if sc.Request.Auth {
		resp, err = r.client.Private(ctx, sc.Request.Method, sc.Request.Path, r.creds)
	} else {
		resp, err = r.client.Public(ctx, sc.Request.Method, sc.Request.Path, sc.Request.Params)
	}
	if err != nil {
		if errors.Is(err, kraken.ErrCredentials) {
			return nil, newError(CodeConfig, sc.Name, err.Error(), err)
		}
		return nil, newError(CodeTransport, sc.Name, err.Error(), err)
	}

	if resp.Status != sc.Expect.Status {
		return resp, newError(CodeStatus, sc.Name,
			fmt.Sprintf("got status %d, want %d", resp.Status, sc.Expect.Status), nil)
	}

	ans, err := kraken.DecodeAnswer(resp.Body)
	if err != nil {
		return resp, newError(CodeShape, sc.Name, err.Error(), err)
	}
	if err := ans.Err(); err != nil {
		return resp, newError(CodeShape, sc.Name, err.Error(), err)
	}

	if err := shape.Validate(tag, ans.Result, shape.Options{Pair: sc.Pair()}); err != nil {
		if errors.Is(err, shape.ErrUnknownTag) {
			return resp, newError(CodeConfig, sc.Name, err.Error(), err)
		}
		return resp, newError(CodeShape, sc.Name, err.Error(), err)
	}

	return resp, nil
}
