package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/enquiry/pkg/diaglog"
)

const stackSize = 8 << 10

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	Running   int64
	Succeeded int64
	Failed    int64
}

// Dispatcher schedules independent background tasks. It is safe for concurrent use.
// Tasks share no state through the dispatcher and run in no particular order.
type Dispatcher struct {
	logger      *slog.Logger
	diag        EntryAppender
	diagMessage string
	onFailure   []func(name string, err error)
	onSuccess   []func(name string)

	wg        sync.WaitGroup
	running   atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:      slog.New(slog.DiscardHandler),
		diagMessage: "Background task failed",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Go starts task in a new goroutine and returns immediately.
// ctx contributes values only; its cancellation and deadline are dropped.
func (d *Dispatcher) Go(ctx context.Context, name string, task Task) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	d.running.Add(1)

	go func() {
		defer d.wg.Done()
		defer d.running.Add(-1)

		start := time.Now()
		err := d.run(ctx, task)
		if err != nil {
			d.failed.Add(1)
			d.recordFailure(ctx, name, err)
			return
		}

		d.succeeded.Add(1)
		d.logger.InfoContext(ctx, "background task completed",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
		)
		for _, fn := range d.onSuccess {
			fn(name)
		}
	}()
}

// run executes task and converts a panic into a PanicError.
func (d *Dispatcher) run(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, stackSize)
			stack = stack[:runtime.Stack(stack, false)]
			err = &PanicError{Value: r, Stack: stack}
		}
	}()
	return task(ctx)
}

// recordFailure logs the failure and appends it to the diagnostic log.
// Nothing here may escape the goroutine: a failing log write is only reported.
func (d *Dispatcher) recordFailure(ctx context.Context, name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "failure recording panicked",
				slog.String("task", name),
				slog.Any("panic", r),
			)
		}
	}()

	entry := diaglog.NewEntry(d.diagMessage, err, fieldsFromContext(ctx)...)
	var pe *PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		entry.Stack = string(pe.Stack)
	}

	d.logger.ErrorContext(ctx, "background task failed",
		slog.String("task", name),
		slog.String("error", entry.Error),
		slog.String("stack", entry.Stack),
	)

	if d.diag != nil {
		if werr := d.diag.Append(entry); werr != nil {
			d.logger.ErrorContext(ctx, "failed to write diagnostic log",
				slog.String("task", name),
				slog.String("error", werr.Error()),
			)
		}
	}

	for _, fn := range d.onFailure {
		fn(name, err)
	}
}

// Stats returns current counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Running:   d.running.Load(),
		Succeeded: d.succeeded.Load(),
		Failed:    d.failed.Load(),
	}
}

// Shutdown waits for running tasks to finish or for ctx to expire.
// Tasks are never cancelled; on timeout they keep running until the process exits.
// Call it after the HTTP server has stopped accepting requests.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.logger.WarnContext(ctx, "background tasks still running at shutdown",
			slog.Int64("running", d.running.Load()),
		)
		return errors.Join(ErrShutdownTimeout, ctx.Err())
	}
}
