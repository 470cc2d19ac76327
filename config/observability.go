package config

import "time"

// MetricsConfig contains StatsD metrics configuration.
type MetricsConfig struct {
	// Enabled turns on UDP StatsD emission.
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// Address is the host:port of the StatsD listener.
	Address string `env:"ADDRESS" envDefault:"localhost:8125"`
}

// IsEnabled reports whether metrics should be emitted.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled && m.Address != ""
}

// SlackConfig contains Slack webhook notification configuration.
// Notifications are enabled whenever a webhook URL is configured.
type SlackConfig struct {
	WebhookURL string        `env:"WEBHOOK_URL"`
	Channel    string        `env:"CHANNEL"`
	Username   string        `env:"USERNAME"    envDefault:"janasethu"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
	RetryLimit int           `env:"RETRY_LIMIT" envDefault:"2"`

	// AlertURLPrefix is joined with alert IDs to form links back into the
	// application. Defaults to APP_BASE_URL + "/alerts" when empty.
	AlertURLPrefix string `env:"ALERT_URL_PREFIX"`
}

// IsEnabled reports whether Slack notifications should be sent.
func (s SlackConfig) IsEnabled() bool {
	return s.WebhookURL != ""
}

// ObservabilityConfig groups metrics and notification configuration.
type ObservabilityConfig struct {
	Metrics MetricsConfig `envPrefix:"STATSD_"`
	Slack   SlackConfig   `envPrefix:"SLACK_"`
}
