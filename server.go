package enquiry

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/enquiry/handlers"
	"github.com/dmitrymomot/enquiry/internal"
	"github.com/dmitrymomot/enquiry/middlewares"
	"github.com/dmitrymomot/enquiry/pkg/diaglog"
	"github.com/dmitrymomot/enquiry/pkg/dispatch"
	"github.com/dmitrymomot/enquiry/pkg/logger"
	"github.com/dmitrymomot/enquiry/pkg/metrics"
	"github.com/dmitrymomot/enquiry/pkg/notify"
)

// DiagMessage prefixes every entry in the dispatch failure log.
const DiagMessage = "Error sending email"

// Server is the assembled enquiry service.
type Server struct {
	cfg        Config
	app        *internal.App
	dispatcher *dispatch.Dispatcher
	diag       *diaglog.Writer
	logger     *slog.Logger
}

// NewServer builds the service from a resolved Config.
func NewServer(cfg Config, opts ...ServerOption) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &serverOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(cfg.Logger, middlewares.RequestIDExtractor())
	}
	if o.senders == nil {
		f, err := senderFactory(cfg)
		if err != nil {
			return nil, err
		}
		o.senders = f
	}

	diag, err := diaglog.New(cfg.DispatchLogFile)
	if err != nil {
		return nil, fmt.Errorf("dispatch log: %w", err)
	}

	dispatchOpts := []dispatch.Option{
		dispatch.WithLogger(o.logger),
		dispatch.WithDiagLog(diag, DiagMessage),
	}
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
		dispatchOpts = append(dispatchOpts,
			dispatch.WithOnSuccess(m.DispatchSucceeded),
			dispatch.WithOnFailure(m.DispatchFailed),
		)
	}
	dispatcher := dispatch.New(dispatchOpts...)

	notifier, err := notify.New(o.senders,
		notify.Config{To: cfg.Recipients(), Mail: cfg.Mail},
		notify.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}

	mw := []internal.Middleware{middlewares.RequestID()}
	routes := []internal.Handler{handlers.NewEnquiryHandler(dispatcher, notifier)}
	if m != nil {
		m.TrackRunning(dispatcher)
		mw = append(mw, middlewares.Metrics(m))
		routes = append(routes, handlers.NewMetricsHandler(cfg.MetricsPath, m.Handler()))
	}
	mw = append(mw,
		middlewares.Recover(),
		middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.CORSOrigins...),
			middlewares.WithAllowCredentials(),
		),
	)

	app := internal.New(
		internal.WithLogger(o.logger),
		internal.WithBodyLimit(cfg.BodyLimit),
		internal.WithMiddleware(mw...),
		internal.WithErrorHandler(middlewares.JSONErrorHandler()),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHealthChecks(
			internal.WithReadinessCheck("dispatch_log", diaglog.Healthcheck(diag)),
		),
		internal.WithHandlers(routes...),
	)

	return &Server{
		cfg:        cfg,
		app:        app,
		dispatcher: dispatcher,
		diag:       diag,
		logger:     o.logger,
	}, nil
}

// Handler returns the HTTP handler. Background notifications started through
// it are tracked by the server's dispatcher.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Dispatcher returns the background dispatcher.
func (s *Server) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Run serves on the configured address until SIGINT, SIGTERM or cancellation
// of a WithContext base context. Extra options are applied after the defaults.
func (s *Server) Run(opts ...RunOption) error {
	s.logger.Info("starting enquiry service",
		slog.String("addr", s.cfg.Addr()),
		slog.String("mail_provider", s.cfg.MailProvider),
		slog.String("dispatch_log", s.diag.Path()),
	)

	base := []RunOption{
		internal.Logger(s.logger),
		internal.ShutdownTimeout(s.cfg.ShutdownTimeout),
		internal.ShutdownHook(s.dispatcher.Shutdown),
		internal.ShutdownHook(logger.Shutdown()),
	}
	return s.app.Run(s.cfg.Addr(), append(base, opts...)...)
}
