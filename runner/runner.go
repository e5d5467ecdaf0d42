package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/agentwire/core"
	"github.com/hupe1980/agentwire/dispatch"
	"github.com/hupe1980/agentwire/logging"
)

// Options holds configuration overrides passed to New().
type Options struct {
	// MaxConcurrentRuns bounds how many runs may execute simultaneously.
	// Zero or negative means unbounded.
	MaxConcurrentRuns int64
	// EventBufferSize sets channel buffering between pipeline and transport.
	EventBufferSize int
	// GenerateTimeout bounds each individual generation call inside a run.
	GenerateTimeout time.Duration
	// Logger receives structured run lifecycle logs.
	Logger logging.Logger
}

// RunInput is the run-scoped request payload handed to Execute.
type RunInput struct {
	ThreadID   string
	RunID      string
	Messages   []core.Message
	ArtifactID string
	Hint       string
	Model      string
	Provider   string
}

// Runner coordinates runs: it resolves pipelines, streams their events with
// the start/finish/error envelope applied, and tracks in-flight runs for
// cooperative cancellation. Public methods are safe for concurrent use.
type Runner struct {
	dispatcher *dispatch.Dispatcher

	eventBufferSize int
	generateTimeout time.Duration
	sem             *semaphore.Weighted
	logger          *logging.RunLogger

	activeRuns map[string]context.CancelFunc
	mu         sync.Mutex
}

// New constructs a Runner with optional overrides.
func New(dispatcher *dispatch.Dispatcher, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxConcurrentRuns: 32,
		EventBufferSize:   64,
		GenerateTimeout:   2 * time.Minute,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var sem *semaphore.Weighted
	if opts.MaxConcurrentRuns > 0 {
		sem = semaphore.NewWeighted(opts.MaxConcurrentRuns)
	}

	return &Runner{
		dispatcher:      dispatcher,
		eventBufferSize: opts.EventBufferSize,
		generateTimeout: opts.GenerateTimeout,
		sem:             sem,
		logger:          logging.NewRunLogger(opts.Logger, "runner"),
		activeRuns:      make(map[string]context.CancelFunc),
	}
}

// Execute starts one run. Resolution failures (unknown agent kind, bad
// provider) are returned synchronously before any event is produced, so the
// caller can surface them as request-shape errors. On success the returned
// channel yields the run's events in emission order, beginning with
// RUN_STARTED and ending with exactly one terminal event; the channel is
// closed afterward.
//
// If the ambient context is cancelled mid-run, forwarding stops and the
// channel closes without a terminal event. A partially streamed text
// sequence may be left open in that case; consumers must treat this as
// truncation, not corruption.
func (r *Runner) Execute(ctx context.Context, agentKind string, input RunInput) (<-chan core.Event, error) {
	p, err := r.dispatcher.Resolve(agentKind, input.Model, input.Provider)
	if err != nil {
		return nil, err
	}

	runID := input.RunID
	if runID == "" {
		runID = core.NewID()
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.activeRuns[runID] = cancel
	r.mu.Unlock()

	events := make(chan core.Event, r.eventBufferSize)

	go r.drive(runCtx, cancel, p, runID, input, events)

	return events, nil
}

// Cancel requests cooperative termination of an in-flight run. Cancelling an
// unknown or already finished run returns an error describing the condition.
func (r *Runner) Cancel(runID string) error {
	r.mu.Lock()
	cancel, ok := r.activeRuns[runID]
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	cancel()
	return nil
}

// ActiveRuns reports how many runs are currently in flight.
func (r *Runner) ActiveRuns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.activeRuns)
}

func (r *Runner) drive(
	ctx context.Context,
	cancel context.CancelFunc,
	p core.Pipeline,
	runID string,
	input RunInput,
	events chan<- core.Event,
) {
	start := time.Now()
	logger := r.logger.WithRun(input.ThreadID, runID)
	sent := 0

	defer func() {
		close(events)
		cancel()
		r.mu.Lock()
		delete(r.activeRuns, runID)
		r.mu.Unlock()
	}()

	send := func(ev core.Event) bool {
		select {
		case <-ctx.Done():
			return false
		case events <- ev:
			sent++
			return true
		}
	}

	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer r.sem.Release(1)
	}

	if !send(core.NewRunStartedEvent(input.ThreadID, runID)) {
		return
	}

	pipeEvents := make(chan core.Event, r.eventBufferSize)

	rc := core.NewRunContext(ctx, input.ThreadID, runID, input.Messages, pipeEvents, logger)
	rc.ArtifactID = input.ArtifactID
	rc.Hint = input.Hint
	rc.GenerateTimeout = r.generateTimeout

	errCh := make(chan error, 1)
	go func() {
		defer close(pipeEvents)
		errCh <- p.Run(rc)
	}()

	for ev := range pipeEvents {
		if !send(ev) {
			// Client gone or run cancelled: stop forwarding and let the
			// pipeline observe ctx cancellation.
			<-errCh
			logger.LogRunCompleted(sent, time.Since(start), ctx.Err())
			return
		}
	}

	err := <-errCh
	if err != nil {
		if ctx.Err() != nil {
			logger.LogRunCompleted(sent, time.Since(start), ctx.Err())
			return
		}
		send(core.NewRunErrorEvent(input.ThreadID, runID, err.Error()))
		logger.LogRunCompleted(sent, time.Since(start), err)
		return
	}

	send(core.NewRunFinishedEvent(input.ThreadID, runID))
	logger.LogRunCompleted(sent, time.Since(start), nil)
}
