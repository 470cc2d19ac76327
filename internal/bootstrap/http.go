package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/janasethu/civic-api/config"
	httpx "github.com/janasethu/civic-api/internal/http"
	"github.com/janasethu/civic-api/internal/observability/statsd"
)

type httpServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// newHTTPServer builds the configured server around the full middleware
// stack. The caller owns ListenAndServe and Shutdown.
func newHTTPServer(cfg httpServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	var metrics statsd.Sink
	if sink := cfg.Services.Observability.MetricsSink; sink != nil {
		metrics = sink
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: routerServices(cfg.Services, appCfg, logger),
		HTTP:     appCfg.HTTP,
		Metrics:  metrics,
	})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// routerServices maps the service container onto the router's dependencies.
func routerServices(services ServiceContainer, appCfg *config.AppConfig, logger *slog.Logger) httpx.RouterServices {
	return httpx.RouterServices{
		Auth:          services.Auth,
		Profiles:      services.Profiles,
		Complaints:    services.Complaints,
		Events:        services.Events,
		Polls:         services.Polls,
		Alerts:        services.Alerts,
		Verifications: services.Verifications,
		Contact:       services.Contact,
		Chat:          services.Chat,
		Reports:       services.Reports,
		Uploads:       services.Uploads,
		Notifier:      services.Notifier,
		Health:        services.Health,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		Logger:        logger,

		UploadsDir:        appCfg.Uploads.Dir,
		UploadsPublicPath: appCfg.Uploads.PublicPath,
	}
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
	Metrics  statsd.Sink
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Order: Recover -> Logging -> Metrics -> Compression -> Router.
	// Compression sits innermost so logging captures compressed sizes.
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression()(h)
	}

	if cfg.Metrics != nil {
		h = httpx.Metrics(cfg.Metrics)(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}
