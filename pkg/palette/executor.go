package palette

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cataplot/palette/pkg/log"
)

// ErrWorkPanic wraps a panic recovered from a work function. It is surfaced
// to listeners as a failure result rather than crashing the engine.
var ErrWorkPanic = errors.New("work function panic")

// Event is a notification emitted by the [Executor]. Variants: [EventStart],
// [EventProgress], [EventResult].
type Event any

type (
	// EventStart indicates that an invocation has started.
	EventStart struct {
		Invocation *Invocation
	}

	// EventProgress relays a report call from the active invocation's work
	// function. Percent is clamped to [0, 100].
	EventProgress struct {
		Invocation *Invocation
		Percent    int
	}

	// EventResult delivers the outcome of an invocation. Err is non-nil when
	// the work function returned an error or panicked; Result is only
	// meaningful when Err is nil.
	EventResult struct {
		Invocation *Invocation
		Err        error
		Result     Result
	}
)

// Invocation is one command execution. At most one invocation is active at a
// time; a superseded invocation keeps running to natural completion but its
// notifications are suppressed.
type Invocation struct {
	cancel    context.CancelFunc
	Params    map[string]any
	Path      Breadcrumbs
	cancelled atomic.Bool
	done      atomic.Bool

	work WorkFunc
}

// Cancelled reports whether the invocation has been superseded.
func (inv *Invocation) Cancelled() bool {
	return inv.cancelled.Load()
}

// Done reports whether the invocation's work function has returned.
func (inv *Invocation) Done() bool {
	return inv.done.Load()
}

func (inv *Invocation) supersede() {
	inv.cancelled.Store(true)
	inv.cancel()
}

// Executor runs one active invocation at a time on a background goroutine.
// Superseding an invocation never interrupts its work; the old handle moves
// into a retiring set that keeps it reachable until the work returns, and the
// set is drained lazily before each new invocation starts.
//
// Invoke and Cancel are called from a single controller thread. Work
// functions run concurrently and deliver notifications through subscriber
// channels; the cancelled flag is checked immediately before every delivery,
// so a superseded invocation's output is never observed, regardless of races
// at delivery time.
type Executor struct {
	tracer    trace.Tracer
	active    *Invocation
	listeners []chan<- Event
	retiring  []*Invocation
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// NewExecutor creates a new [Executor].
func NewExecutor() *Executor {
	return &Executor{
		tracer: otel.Tracer("palette-executor"),
	}
}

// Subscribe adds a channel that will receive all non-suppressed events.
// Delivery happens on the invocation's goroutine and blocks until the channel
// is read, so subscribers must consume promptly or buffer. Subscribe must not
// be called after Invoke.
func (e *Executor) Subscribe(ch chan<- Event) {
	e.listeners = append(e.listeners, ch)
}

// Invoke supersedes any active invocation and starts a new one for the given
// command and breadcrumb path. It returns the new invocation's handle without
// waiting for the work to finish. All event delivery, including the start
// notification, happens on the invocation's goroutine: Invoke never blocks on
// a subscriber, so it is safe to call from the same thread that consumes the
// events.
func (e *Executor) Invoke(ctx context.Context, cmd Command, path Breadcrumbs) *Invocation {
	e.mu.Lock()

	e.reapLocked()
	e.retireLocked()

	ctx, cancel := context.WithCancel(ctx)
	inv := &Invocation{
		work:   cmd.Work,
		Params: cmd.Params,
		Path:   path.Clone(),
		cancel: cancel,
	}
	e.active = inv
	e.wg.Add(1)

	e.mu.Unlock()

	go e.run(ctx, inv)

	return inv
}

// Cancel supersedes the active invocation, if any, without starting a new
// one. The work keeps running in the background; only its output is ignored.
func (e *Executor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reapLocked()
	e.retireLocked()
}

// Retiring returns the number of superseded invocations still running.
func (e *Executor) Retiring() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, inv := range e.retiring {
		if !inv.Done() {
			n++
		}
	}

	return n
}

// Close supersedes the active invocation and blocks until all outstanding
// background work has finished.
func (e *Executor) Close() {
	e.Cancel()
	e.wg.Wait()
}

// retireLocked moves the active invocation into the retiring set. Callers
// must hold e.mu.
func (e *Executor) retireLocked() {
	if e.active == nil {
		return
	}

	e.active.supersede()
	if !e.active.Done() {
		e.retiring = append(e.retiring, e.active)
	}

	e.active = nil
}

// reapLocked drops retiring entries whose work has finished, bounding memory
// growth. Callers must hold e.mu.
func (e *Executor) reapLocked() {
	e.retiring = slices.DeleteFunc(e.retiring, func(inv *Invocation) bool {
		return inv.Done()
	})
}

func (e *Executor) run(ctx context.Context, inv *Invocation) {
	defer e.wg.Done()
	defer inv.cancel()

	ctx, span := e.tracer.Start(ctx, "invoke", trace.WithAttributes(
		attribute.String("command", inv.Path.Command),
		attribute.String("path", inv.Path.String()),
	))
	defer span.End()

	logger := log.WithContext(ctx).With(slog.String("command", inv.Path.Command))
	ctx = log.ContextWithLogger(ctx, logger)

	if !inv.Cancelled() {
		e.broadcast(EventStart{Invocation: inv})
	}

	report := func(percent int) {
		if inv.Cancelled() {
			return
		}

		e.broadcast(EventProgress{
			Invocation: inv,
			Percent:    min(100, max(0, percent)),
		})
	}

	res, err := runWork(ctx, inv, report)

	inv.done.Store(true)

	// Force a final progress report for bookkeeping before delivering the
	// result. Both are suppressed once the invocation is superseded.
	report(100)

	if inv.Cancelled() {
		logger.DebugContext(ctx, "suppressed result from superseded invocation",
			slog.String("path", inv.Path.String()),
		)

		return
	}

	if err != nil {
		logger.DebugContext(ctx, "work function failed",
			slog.String("path", inv.Path.String()),
			slog.Any("error", err),
		)
	}

	e.broadcast(EventResult{Invocation: inv, Result: res, Err: err})
}

// runWork calls the work function, converting a panic into an error so a
// failing command cannot take down the engine.
func runWork(ctx context.Context, inv *Invocation, report ProgressFunc) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrWorkPanic, r)
		}
	}()

	return inv.work(ctx, inv.Path.Clone(), report)
}

func (e *Executor) broadcast(evt Event) {
	for _, ch := range e.listeners {
		ch <- evt
	}
}
