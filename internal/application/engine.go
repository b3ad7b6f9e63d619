package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/piot/conclave-console/internal/ports"
)

// DefaultTickInterval bounds input latency and CPU usage. It is not a
// correctness mechanism; tick ordering is.
const DefaultTickInterval = 16 * time.Millisecond

const DefaultPrompt = "conclave> "

// EngineOptions tune the loop without touching its ordering guarantees.
type EngineOptions struct {
	Prompt           string
	TickInterval     time.Duration
	ResponseCapacity int
}

// Engine is the single-threaded console loop. Per tick, strictly in order:
// advance both sessions, scan for version-counter changes, announce the
// resulting notifications, poll the editor, dispatch a completed line. There
// is no parallelism and no locking; the app context is touched only from
// Run's goroutine.
type Engine struct {
	app        *Context
	poller     *Poller
	detector   *Detector
	console    *ConsoleController
	dispatcher *Dispatcher
	clock      ports.Clock
	prompt     string
	tick       time.Duration
	log        *slog.Logger
}

func NewEngine(
	app *Context,
	poller *Poller,
	detector *Detector,
	console *ConsoleController,
	dispatcher *Dispatcher,
	clock ports.Clock,
	opts EngineOptions,
) *Engine {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	return &Engine{
		app:        app,
		poller:     poller,
		detector:   detector,
		console:    console,
		dispatcher: dispatcher,
		clock:      clock,
		prompt:     prompt,
		tick:       opts.TickInterval,
		log:        app.Log,
	}
}

// Run loops until the context is cancelled, the user quits or interrupts, or
// a session reports a fatal transport error (returned as-is for exit-code
// mapping). Cancellation is cooperative: the current iteration completes,
// including any in-flight render, before the editor is shut down.
func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		if err := e.console.Close(); err != nil {
			e.log.Warn("closing line editor", "error", err)
		}
	}()

	e.console.SetPrompt(e.prompt)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := e.clock.Now()

		if err := e.poller.Tick(e.app, now); err != nil {
			return err
		}

		for _, notification := range e.detector.Scan(e.app) {
			e.console.Announce(notification.Text)
		}

		switch e.console.Poll() {
		case ports.EditorInterrupted:
			e.log.Debug("editor interrupted")
			return nil
		case ports.EditorLineCompleted:
			quit, err := e.dispatcher.Dispatch(e.console.Line(), e.app)
			if err != nil {
				return err
			}
			e.console.FinishLine()
			if quit {
				return nil
			}
		}

		if !e.sleep(ctx) {
			return nil
		}
	}
}

// sleep waits one tick interval or until cancellation; reports false when
// cancelled. A non-positive interval skips the wait (used by tests).
func (e *Engine) sleep(ctx context.Context) bool {
	if e.tick <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(e.tick)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
