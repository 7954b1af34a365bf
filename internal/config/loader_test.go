package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/eventdesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TicketmasterAPIKey, convey.ShouldBeEmpty)
				convey.So(cfg.TicketmasterTimeoutMS, convey.ShouldEqual, 15_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EVENTDESK_ADDR", ":9090")
			_ = os.Setenv("EVENTDESK_TICKETMASTER_API_KEY", "tm-key")
			_ = os.Setenv("EVENTDESK_TICKETMASTER_TIMEOUT_MS", "2500")
			_ = os.Setenv("EVENTDESK_DATABASE_URL", "postgres://u:p@db:5432/app")
			_ = os.Setenv("EVENTDESK_DATABASE_AUTO_MIGRATE", "false")
			_ = os.Setenv("EVENTDESK_MEETUP_CLIENT_ID", "meetup-id")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TicketmasterAPIKey, convey.ShouldEqual, "tm-key")
				convey.So(cfg.TicketmasterTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.DatabaseURL, convey.ShouldEqual, "postgres://u:p@db:5432/app")
				convey.So(cfg.DatabaseAutoMigrate, convey.ShouldBeFalse)
				convey.So(cfg.MeetupClientID, convey.ShouldEqual, "meetup-id")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempFile("eventdesk-config-*.yaml", `
addr: ":7070"
log_level: debug
eventbrite_client_id: eb-id
eventbrite_redirect_uri: http://localhost:7070/api/eventbrite/callback
amqp_exchange: people
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EVENTDESK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.EventbriteClientID, convey.ShouldEqual, "eb-id")
				convey.So(cfg.AMQPExchange, convey.ShouldEqual, "people")
				convey.So(cfg.TicketmasterTimeoutMS, convey.ShouldEqual, 15_000) // default
			})
		})

		convey.Convey("When both file and environment variables are set", func() {
			tmpFile := createTempFile("eventdesk-config-*.yaml", `
addr: ":7070"
log_level: debug
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EVENTDESK_CONFIG", tmpFile)
			_ = os.Setenv("EVENTDESK_ADDR", ":6060")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When a .env file is provided", func() {
			envFile := createTempFile("eventdesk-*.env", "EVENTDESK_TICKETMASTER_API_KEY=from-dotenv\nEVENTDESK_ADDR=:5050\n")
			defer func() { _ = os.Remove(envFile) }()
			_ = os.Setenv("EVENTDESK_ENV_FILE", envFile)
			_ = os.Setenv("EVENTDESK_ADDR", ":4040")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fill missing variables without overriding existing ones", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TicketmasterAPIKey, convey.ShouldEqual, "from-dotenv")
				convey.So(cfg.Addr, convey.ShouldEqual, ":4040")
			})
		})

		convey.Convey("When an explicit .env file is missing", func() {
			_ = os.Setenv("EVENTDESK_ENV_FILE", "/non/existent/.env")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("eventdesk-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("EVENTDESK_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EVENTDESK_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("EVENTDESK_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive provider timeout", func() {
			_ = os.Setenv("EVENTDESK_TICKETMASTER_TIMEOUT_MS", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("EVENTDESK_DATABASE_MAX_OPEN_CONNS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "EVENTDESK_") {
			_ = os.Unsetenv(key)
		}
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
