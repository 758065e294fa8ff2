// Package middlewares provides the HTTP middleware used by the enquiry server.
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.CORS(
//	            middlewares.WithAllowOrigins("http://localhost:3000"),
//	            middlewares.WithAllowCredentials(),
//	        ),
//	    ),
//	    internal.WithErrorHandler(middlewares.JSONErrorHandler()),
//	)
//
// Pair the logger with [RequestIDExtractor] to get request_id on every record:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//
// Recover converts panics into a [PanicError] which the error handler renders
// as a 500 response; the stack is logged, never sent to clients.
package middlewares
