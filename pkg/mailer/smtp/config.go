package smtp

import "time"

// Config holds SMTP transport settings.
// Defaults target Gmail with STARTTLS and an app password.
type Config struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	TLS      string        `env:"SMTP_TLS" envDefault:"mandatory"` // mandatory, opportunistic or none
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
}
