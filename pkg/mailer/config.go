package mailer

// Config holds rendering defaults.
// Embed it in the app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAIL_FALLBACK_SUBJECT" envDefault:"New enquiry"`
	DefaultLayout   string `env:"MAIL_DEFAULT_LAYOUT" envDefault:"base.html"`
}
