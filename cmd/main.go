package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/eventdesk/internal/adapters/http/api"
	"github.com/okian/eventdesk/internal/adapters/http/site"
	"github.com/okian/eventdesk/internal/adapters/http/swagger"
	"github.com/okian/eventdesk/internal/adapters/mq/publisher"
	"github.com/okian/eventdesk/internal/adapters/oauth"
	"github.com/okian/eventdesk/internal/adapters/repository"
	"github.com/okian/eventdesk/internal/adapters/ticketmaster"
	app "github.com/okian/eventdesk/internal/app"
	"github.com/okian/eventdesk/internal/config"
	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := buildService(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build service", logger.Error(err))
		os.Exit(1)
	}
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx, metrics.DefaultRefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildService wires the adapters selected by cfg into the service facade.
// A missing database or broker only disables the features that need them.
func buildService(ctx context.Context, cfg *config.Config, l logger.Logger) (*app.Service, error) {
	opts := []app.Option{
		app.WithLogger(l),
		app.WithEventSearcher(ticketmaster.NewClient(
			ticketmaster.WithAPIKey(cfg.TicketmasterAPIKey),
			ticketmaster.WithBaseURL(cfg.TicketmasterBaseURL),
			ticketmaster.WithTimeout(time.Duration(cfg.TicketmasterTimeoutMS)*time.Millisecond),
			ticketmaster.WithLogger(l.Named("ticketmaster")),
		)),
	}

	if cfg.DatabaseURL != "" {
		store, err := repository.Open(ctx, cfg.DatabaseURL,
			repository.WithMaxOpenConns(cfg.DatabaseMaxOpenConns),
			repository.WithLogger(l.Named("contacts")),
		)
		if err != nil {
			return nil, err
		}
		if cfg.DatabaseAutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		opts = append(opts, app.WithContactStore(store))
	} else {
		l.Warn(ctx, "database_url not set; contacts endpoints are disabled")
	}

	signer, err := oauth.NewStateSigner(cfg.OAuthStateSecret)
	if err != nil {
		return nil, err
	}
	eventbrite, err := oauth.NewEventbrite(
		oauth.WithCredentials(cfg.EventbriteClientID, cfg.EventbriteClientSecret),
		oauth.WithRedirectURI(cfg.EventbriteRedirectURI),
		oauth.WithStateSigner(signer),
		oauth.WithLogger(l.Named("oauth")),
	)
	if err != nil {
		return nil, err
	}
	meetup, err := oauth.NewMeetup(
		oauth.WithCredentials(cfg.MeetupClientID, cfg.MeetupClientSecret),
		oauth.WithRedirectURI(cfg.MeetupRedirectURI),
		oauth.WithStateSigner(signer),
		oauth.WithLogger(l.Named("oauth")),
	)
	if err != nil {
		return nil, err
	}
	opts = append(opts, app.WithOAuthProvider(eventbrite), app.WithOAuthProvider(meetup))

	if cfg.AMQPURL != "" {
		pub, err := publisher.Dial(cfg.AMQPURL,
			publisher.WithExchange(cfg.AMQPExchange),
			publisher.WithLogger(l.Named("publisher")),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithPublisher(pub))
	}

	return app.New(opts...), nil
}

// newHandler registers every route on a fresh mux and wraps it with request logging.
func newHandler(ctx context.Context, svc *app.Service, l logger.Logger) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	site.Register(ctx, mux)

	return api.RequestLogger(mux, l.Named("http"))
}

// startSystemMetricsUpdater refreshes the runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
