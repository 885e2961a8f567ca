package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/voxkit/skilltest/request"
)

// Runner replays sequences against a handler. A Runner is configured
// once and may execute any number of sequences, one at a time.
type Runner struct {
	handler   Handler
	checks    Checks
	localizer Localizer
	recorder  TurnRecorder
	logger    *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithChecks replaces the runner's conformance toggle set.
func WithChecks(c Checks) RunnerOption {
	return func(r *Runner) { r.checks = c }
}

// WithLocalizer sets the localization collaborator exposed to custom
// callbacks through StepContext.
func WithLocalizer(l Localizer) RunnerOption {
	return func(r *Runner) { r.localizer = l }
}

// WithRecorder attaches a transcript recorder. Recording is best-effort;
// recorder errors are logged and never fail a sequence.
func WithRecorder(rec TurnRecorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// New creates a Runner for the given handler with the default
// conformance toggle set (built-in rules opt-in).
func New(handler Handler, opts ...RunnerOption) *Runner {
	r := &Runner{
		handler: handler,
		checks:  DefaultChecks(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetFeature toggles a conformance check by name between sequence
// executions. Unknown names are an error.
func (r *Runner) SetFeature(name string, enabled bool) error {
	return r.checks.Set(name, enabled)
}

// Test registers a subtest that executes the sequence and fails it at
// the first violated expectation. Configuration errors (nil handler,
// contradictory steps) also fail the subtest.
func (r *Runner) Test(t *testing.T, name string, seq Sequence) {
	t.Run(name, func(t *testing.T) {
		if err := r.validate(seq); err != nil {
			t.Fatal(err)
		}
		_ = r.Execute(context.Background(), seq, NewTestReporter(t))
	})
}

// Run executes the sequence outside a testing context and returns the
// collected outcome. Configuration errors are returned synchronously;
// expectation violations and handler errors land in Result.Failure.
func (r *Runner) Run(ctx context.Context, seq Sequence) (*Result, error) {
	if err := r.validate(seq); err != nil {
		return nil, err
	}

	// Execute on its own goroutine so the reporter can abort it
	// mid-sequence the same way testing.T.Fatal would.
	rep := &collectReporter{}
	var execErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		execErr = r.Execute(ctx, seq, rep)
	}()
	wg.Wait()

	if execErr != nil {
		return nil, execErr
	}
	return &Result{Completed: rep.completed, Failure: rep.failure}, nil
}

// Execute drives the sequence: for each step it injects the carried
// session state into the request, invokes the handler in a fresh
// sandbox, evaluates the step's expectations and then the conformance
// checks, and carries the response's sessionAttributes forward. The
// first violation is raised through the reporter and halts the loop.
//
// The reporter's FailNow terminates the calling goroutine; callers that
// need to survive a failure must run Execute on a dedicated goroutine
// (Run does this).
func (r *Runner) Execute(ctx context.Context, seq Sequence, rep Reporter) error {
	if err := r.validate(seq); err != nil {
		return err
	}

	state := map[string]any{}
	for i, step := range seq {
		req := step.Request
		req.Session.Attributes = state
		req.Session.New = i == 0

		kind := requestKind(req)
		stepCtx := &StepContext{
			Index:       i,
			Locale:      req.Request.Locale,
			RequestKind: kind,
			localizer:   r.localizer,
			reporter:    rep,
		}

		r.logger.Debug("dispatching request", "step", i, "kind", kind)

		resp, err := r.invoke(ctx, req)
		if err != nil {
			// Handler errors are forwarded verbatim, not reinterpreted
			// as expectation violations.
			rep.FailNow(Failure{Message: err.Error()})
			return nil
		}

		facets := ExtractFacets(resp)
		r.record(ctx, i, kind, req, resp, facets)

		for _, f := range evaluateStep(step, facets) {
			stepCtx.Fail(f)
		}
		if step.SaysCallback != nil {
			step.SaysCallback(stepCtx, facets.Speech)
		}
		if step.Callback != nil {
			step.Callback(stepCtx, resp)
		}
		for _, f := range r.checks.evaluate(facets) {
			stepCtx.Fail(f)
		}

		state = resp.SessionAttributes

		r.logger.Debug("step passed", "step", i, "kind", kind,
			"ends_session", facets.EndsSession)
	}

	rep.Done()
	return nil
}

// invoke runs one handler call inside an isolated execution context: a
// fresh goroutine with panic recovery, resolving to a response or an
// error. Timeouts are the caller's concern via ctx.
func (r *Runner) invoke(ctx context.Context, req *request.Envelope) (*Response, error) {
	type outcome struct {
		resp *Response
		err  error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- outcome{err: fmt.Errorf("handler panic: %v", p)}
			}
		}()
		resp, err := r.handler(ctx, req)
		ch <- outcome{resp: resp, err: err}
	}()

	select {
	case o := <-ch:
		if o.err != nil {
			return nil, o.err
		}
		if o.resp == nil {
			return nil, fmt.Errorf("handler returned no response")
		}
		return o.resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Runner) record(ctx context.Context, index int, kind string, req *request.Envelope, resp *Response, f Facets) {
	if r.recorder == nil {
		return
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		r.logger.Warn("transcript: marshal request", "step", index, "error", err)
		return
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		r.logger.Warn("transcript: marshal response", "step", index, "error", err)
		return
	}

	turn := Turn{
		Index:       index,
		Kind:        kind,
		Locale:      req.Request.Locale,
		Request:     reqJSON,
		Response:    respJSON,
		Speech:      f.Speech,
		EndsSession: f.EndsSession,
	}
	if err := r.recorder.Record(ctx, turn); err != nil {
		r.logger.Warn("transcript: record turn", "step", index, "error", err)
	}
}

// validate rejects configuration errors before any handler invocation.
func (r *Runner) validate(seq Sequence) error {
	if r.handler == nil {
		return fmt.Errorf("harness: handler is required")
	}
	if len(seq) == 0 {
		return fmt.Errorf("harness: sequence must contain at least one step")
	}
	for i, step := range seq {
		if step.Request == nil {
			return fmt.Errorf("harness: step %d: request is required", i)
		}
		if step.Says != nil && step.SaysNothing {
			return fmt.Errorf("harness: step %d: Says and SaysNothing are mutually exclusive", i)
		}
		if step.Reprompts != nil && step.RepromptsNothing {
			return fmt.Errorf("harness: step %d: Reprompts and RepromptsNothing are mutually exclusive", i)
		}
	}
	return nil
}

// requestKind derives the human-readable request label used in failure
// prefixes: the intent name for intent invocations, the request type
// otherwise.
func requestKind(req *request.Envelope) string {
	if req.Request.Type == request.TypeIntent && req.Request.Intent != nil {
		return req.Request.Intent.Name
	}
	return req.Request.Type
}
