package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/janasethu/civic-api/config"
	"github.com/janasethu/civic-api/internal/adapters/authroles"
	"github.com/janasethu/civic-api/internal/adapters/devauth"
	"github.com/janasethu/civic-api/internal/adapters/oidc"
	redisadapter "github.com/janasethu/civic-api/internal/adapters/redis"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/data/cryptoutil"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/service"
)

// AuthDeps contains the dependencies for building the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Sessions always live in Redis; elevation grants and the admin PIN always
// live in Postgres, whichever mode supplies the identity.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth service requires a redis client")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("auth service requires a database")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")

	roleMapper := authroles.StaticRoleMapper{
		AdminGroup: deps.Auth.AdminGroup,
	}

	grants := data.NewGrantRepo(data.GrantRepoOptions{
		DB:  deps.DB,
		TTL: deps.Auth.ElevationTTL,
	})

	pins, err := data.NewAdminSettingsRepo(data.AdminSettingsRepoOptions{DB: deps.DB})
	if err != nil {
		return nil, fmt.Errorf("build admin settings repo: %w", err)
	}

	hasher, err := cryptoutil.NewArgon2idHasher(cryptoutil.DefaultArgon2idParams())
	if err != nil {
		return nil, fmt.Errorf("build password hasher: %w", err)
	}

	provider, err := buildAuthProvider(deps.Auth, deps.Logger)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessionStore,
		Roles:      roleMapper,
		Users:      data.NewUserRepo(deps.DB),
		Profiles:   data.NewProfileRepo(deps.DB),
		Grants:     grants,
		Pins:       pins,
		Passwords:  hasher,
		SessionTTL: deps.Auth.SessionTTL,
	}), nil
}

// buildAuthProvider returns the identity provider for the configured mode.
// Password mode uses no provider: credentials are checked locally.
//
//nolint:ireturn // the provider port is what the auth service consumes.
func buildAuthProvider(cfg config.AuthConfig, logger *slog.Logger) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModePassword:
		return nil, nil

	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID: cfg.DevAuth.UserID,
			Email:  cfg.DevAuth.Email,
			Groups: cfg.DevAuth.Groups,
			// session duration defaults inside provider
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		if logger != nil {
			logger.Warn("mock auth enabled; do not use in production", "user_id", cfg.DevAuth.UserID)
		}
		return prov, nil

	case config.AuthModeOAuth:
		oauth := cfg.OAuth
		if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
			return nil, fmt.Errorf("oauth mode requires OAUTH_DISCOVERY_URL, OAUTH_CLIENT_ID, and OAUTH_CLIENT_SECRET")
		}
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
			LogoutURL:    oauth.LogoutURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
