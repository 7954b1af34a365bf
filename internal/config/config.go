// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers a YAML file and EVENTDESK_* environment variables on top.
//   - Errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL is the Postgres DSN of the contacts datastore.
	DatabaseURL          string `koanf:"database_url"`
	DatabaseMaxOpenConns int    `koanf:"database_max_open_conns"`
	DatabaseAutoMigrate  bool   `koanf:"database_auto_migrate"`

	TicketmasterAPIKey    string `koanf:"ticketmaster_api_key"`
	TicketmasterBaseURL   string `koanf:"ticketmaster_base_url"`
	TicketmasterTimeoutMS int    `koanf:"ticketmaster_timeout_ms"`

	EventbriteClientID     string `koanf:"eventbrite_client_id"`
	EventbriteClientSecret string `koanf:"eventbrite_client_secret"`
	EventbriteRedirectURI  string `koanf:"eventbrite_redirect_uri"`

	MeetupClientID     string `koanf:"meetup_client_id"`
	MeetupClientSecret string `koanf:"meetup_client_secret"`
	MeetupRedirectURI  string `koanf:"meetup_redirect_uri"`

	// OAuthStateSecret signs the OAuth state parameter. A random secret is
	// generated per process when empty.
	OAuthStateSecret string `koanf:"oauth_state_secret"`

	// AMQPURL enables contact change notifications when set.
	AMQPURL      string `koanf:"amqp_url"`
	AMQPExchange string `koanf:"amqp_exchange"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":8080",
		DatabaseMaxOpenConns:  10,
		DatabaseAutoMigrate:   true,
		TicketmasterBaseURL:   "https://app.ticketmaster.com",
		TicketmasterTimeoutMS: 15_000,
		AMQPExchange:          "contacts",
	}
}
