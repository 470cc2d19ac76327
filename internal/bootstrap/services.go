package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/janasethu/civic-api/config"
	"github.com/janasethu/civic-api/internal/adapters/localstore"
	redisadapter "github.com/janasethu/civic-api/internal/adapters/redis"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/realtime"
	httpx "github.com/janasethu/civic-api/internal/http"
	"github.com/janasethu/civic-api/internal/observability/notify"
	"github.com/janasethu/civic-api/internal/observability/notify/slack"
	"github.com/janasethu/civic-api/internal/observability/statsd"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/service"
)

// shutdownTimeout is the maximum time to wait for in-flight requests to
// drain during graceful shutdown.
const shutdownTimeout = 15 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Profiles      *service.ProfileService
	Complaints    *service.ComplaintService
	Events        *service.EventService
	Polls         *service.PollService
	Alerts        *service.AlertService
	Verifications *service.VerificationService
	Contact       *service.ContactService
	Chat          *service.ChatService
	Reports       *service.ReportService
	Uploads       ports.FileStore
	Notifier      realtime.Notifier
	Health        *httpx.HealthHandlers
	Observability ObservabilityContainer

	// PubSub is the Redis bridge behind Notifier; Run closes it after the
	// listeners stop so subscriptions do not outlive the process.
	PubSub io.Closer
}

// ObservabilityContainer groups shared observability adapters.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	AlertNotifier notify.Sink
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB               *sql.DB
	Redis            redis.UniversalClient
	ProfileRepo      *data.ProfileRepo
	ComplaintRepo    *data.ComplaintRepo
	EventRepo        *data.EventRepo
	PollRepo         *data.PollRepo
	AlertRepo        *data.AlertRepo
	VerificationRepo *data.VerificationRepo
	ContactRepo      *data.ContactRepo
	ChatRepo         *data.ChatRepo
	CacheRepo        *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:               db,
		Redis:            redisClient,
		ProfileRepo:      data.NewProfileRepo(db),
		ComplaintRepo:    data.NewComplaintRepo(db),
		EventRepo:        data.NewEventRepo(db),
		PollRepo:         data.NewPollRepo(db),
		AlertRepo:        data.NewAlertRepo(db),
		VerificationRepo: data.NewVerificationRepo(db),
		ContactRepo:      data.NewContactRepo(db),
		ChatRepo:         data.NewChatRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

// buildObservability configures the metrics sink and the alert notifier.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig, baseURL string) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var container ObservabilityContainer

	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.Address,
			Prefix:  "janasethu",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			container.MetricsSink = client
		}
	}

	if cfg.Slack.IsEnabled() {
		urlPrefix := cfg.Slack.AlertURLPrefix
		if urlPrefix == "" && baseURL != "" {
			urlPrefix = baseURL + "/alerts"
		}
		client, err := slack.NewClient(slack.Config{
			WebhookURL:     cfg.Slack.WebhookURL,
			Channel:        cfg.Slack.Channel,
			Username:       cfg.Slack.Username,
			Timeout:        cfg.Slack.Timeout,
			RetryLimit:     cfg.Slack.RetryLimit,
			AlertURLPrefix: urlPrefix,
		})
		if err != nil {
			obsLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			container.AlertNotifier = client
		}
	}

	return container
}

// buildRealtime wires the Redis pub/sub bridge into the fan-out notifier.
// Both sides are optional: without Redis, changes are simply not broadcast.
func buildRealtime(redisClient redis.UniversalClient, logger *slog.Logger) (*redisadapter.PubSub, realtime.Notifier) {
	if redisClient == nil {
		return nil, nil
	}
	pubsub := redisadapter.NewPubSub(redisClient)
	notifier, err := realtime.NewNotifier(realtime.NotifierOptions{Waiter: pubsub})
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialise realtime notifier", "error", err)
		}
		return pubsub, nil
	}
	return pubsub, notifier
}

// NewServices wires the full service graph from shared infrastructure.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	observability := buildObservability(logger, appCfg.Observability, appCfg.HTTP.BaseURL)
	repos := buildRepositories(deps.DB, deps.RedisClient)

	pubsub, notifier := buildRealtime(deps.RedisClient, logger)
	var publisher ports.Publisher
	var pubsubCloser io.Closer
	if pubsub != nil {
		publisher = pubsub
		pubsubCloser = pubsub
	}

	authService, err := BuildAuthService(AuthDeps{
		Auth:        appCfg.Auth,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	uploads, err := localstore.New(localstore.Options{
		Dir:        appCfg.Uploads.Dir,
		PublicPath: appCfg.Uploads.PublicPath,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build upload store: %w", err)
	}

	reportOpts := service.ReportServiceOptions{Complaints: repos.ComplaintRepo}
	if repos.CacheRepo != nil {
		reportOpts.Cache = repos.CacheRepo
	}

	health := &httpx.HealthHandlers{}
	if deps.DB != nil {
		health.DB = httpx.PingerFunc(deps.DB.PingContext)
	}
	if deps.RedisClient != nil {
		redisClient := deps.RedisClient
		health.Redis = httpx.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	return ServiceContainer{
		Auth:       authService,
		Profiles:   service.NewProfileService(service.ProfileServiceOptions{Repo: repos.ProfileRepo}),
		Complaints: service.NewComplaintService(service.ComplaintServiceOptions{Repo: repos.ComplaintRepo, Publisher: publisher}),
		Events:     service.NewEventService(service.EventServiceOptions{Repo: repos.EventRepo}),
		Polls:      service.NewPollService(service.PollServiceOptions{Repo: repos.PollRepo}),
		Alerts: service.NewAlertService(service.AlertServiceOptions{
			Repo:      repos.AlertRepo,
			Publisher: publisher,
			Notifier:  observability.AlertNotifier,
			Logger:    logger,
		}),
		Verifications: service.NewVerificationService(service.VerificationServiceOptions{Repo: repos.VerificationRepo}),
		Contact:       service.NewContactService(service.ContactServiceOptions{Repo: repos.ContactRepo}),
		Chat:          service.NewChatService(service.ChatServiceOptions{Repo: repos.ChatRepo, Publisher: publisher}),
		Reports:       service.NewReportService(reportOpts),
		Uploads:       uploads,
		Notifier:      notifier,
		Health:        health,
		Observability: observability,
		PubSub:        pubsubCloser,
	}, nil
}

// RunConfig contains everything needed to run the application.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails. Shutdown drains in-flight requests and stops the
// realtime listeners.
func Run(cfg RunConfig) error {
	if cfg.Config == nil {
		return errors.New("run config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := newHTTPServer(httpServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		stopRealtime(cfg.Services, logger)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}

// stopRealtime stops the listener fan-out, then closes the Redis
// subscriptions behind it.
func stopRealtime(services ServiceContainer, logger *slog.Logger) {
	if services.Notifier != nil {
		services.Notifier.StopAll()
	}
	if services.PubSub != nil {
		if err := services.PubSub.Close(); err != nil {
			logger.Warn("close realtime pubsub", "error", err)
		}
	}
}
