// Package internal contains the HTTP application core: the App, the request
// Context, routing adapters over chi, typed HTTP errors and the server runtime
// with graceful shutdown.
//
// The root package re-exports the public surface; handlers and middlewares
// depend on this package directly.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithErrorHandler(middlewares.JSONErrorHandler()),
//	    internal.WithHandlers(handlers.NewEnquiryHandler(dispatcher, notifier)),
//	    internal.WithHealthChecks(
//	        internal.WithReadinessCheck("dispatch_log", diaglog.Healthcheck(w)),
//	    ),
//	)
//
//	err := app.Run(":5001",
//	    internal.Logger(log),
//	    internal.ShutdownHook(dispatcher.Shutdown),
//	)
//
// Handlers receive a [Context] that wraps the request and a [ResponseWriter]
// which records whether anything was written, so the error handler never
// writes over a committed response.
package internal
