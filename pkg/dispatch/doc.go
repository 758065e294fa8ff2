// Package dispatch runs fire-and-forget background work after an HTTP response
// has been sent.
//
// A [Dispatcher] starts each task in its own goroutine with a context that keeps
// the request's values (request_id for logs) but not its cancellation, so a
// client hanging up never aborts a send. Every task runs inside a failure
// boundary: returned errors and panics are caught in place, never retried and
// never propagated; they are logged and appended to the diagnostic log.
//
//	d := dispatch.New(
//	    dispatch.WithLogger(log),
//	    dispatch.WithDiagLog(diagWriter, "Error sending email"),
//	)
//
//	_ = c.JSON(http.StatusOK, ack)
//	c.Flush()
//	d.Go(c, "notify_operator", func(ctx context.Context) error {
//	    return notifier.Notify(ctx, payload)
//	})
//
// There is no timeout and no cancellation at this level; timeouts belong to the
// transport used inside the task. [Dispatcher.Shutdown] only waits for running
// tasks, bounded by the shutdown context.
package dispatch
