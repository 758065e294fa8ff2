package enquiry

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/enquiry/pkg/logger"
	"github.com/dmitrymomot/enquiry/pkg/mailer"
	"github.com/dmitrymomot/enquiry/pkg/mailer/resend"
	"github.com/dmitrymomot/enquiry/pkg/mailer/smtp"
)

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Port            int           `env:"PORT" envDefault:"5001"`
	Host            string        `env:"HOST"`
	EmailTo         []string      `env:"EMAIL_TO" envSeparator:","`
	MailProvider    string        `env:"MAIL_PROVIDER" envDefault:"smtp"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	DispatchLogFile string        `env:"DISPATCH_LOG_FILE" envDefault:"email_errors.log"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	BodyLimit       int64         `env:"BODY_LIMIT" envDefault:"65536"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsPath     string        `env:"METRICS_PATH" envDefault:"/metrics"`

	Logger logger.Config
	Mail   mailer.Config
	SMTP   smtp.Config
	Resend resend.Config
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Recipients returns the notification recipients. Without EMAIL_TO the
// operator's own SMTP account receives the notifications.
func (c Config) Recipients() []string {
	out := make([]string, 0, len(c.EmailTo))
	for _, to := range c.EmailTo {
		if to = strings.TrimSpace(to); to != "" {
			out = append(out, to)
		}
	}
	if len(out) == 0 && c.SMTP.Username != "" {
		out = append(out, c.SMTP.Username)
	}
	return out
}

// Validate checks settings that cannot be fixed by defaults.
func (c Config) Validate() error {
	var errs []error
	switch c.MailProvider {
	case ProviderSMTP, ProviderResend:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownProvider, c.MailProvider))
	}
	if len(c.Recipients()) == 0 {
		errs = append(errs, ErrNoRecipient)
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DispatchLogFile == "" {
		errs = append(errs, errors.New("DISPATCH_LOG_FILE is empty"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LoadConfig loads the given .env files (".env" when none are named) into the
// process environment, then parses and validates Config. Missing files are skipped;
// variables already set in the environment win.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.MailProvider = strings.ToLower(strings.TrimSpace(cfg.MailProvider))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
