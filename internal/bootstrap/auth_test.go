package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/config"
)

func TestBuildAuthService_RequiresRedis(t *testing.T) {
	_, err := BuildAuthService(AuthDeps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBuildAuthProvider_PasswordModeHasNoProvider(t *testing.T) {
	prov, err := buildAuthProvider(config.AuthConfig{Mode: config.AuthModePassword}, nil)
	require.NoError(t, err)
	assert.Nil(t, prov)
}

func TestBuildAuthProvider_MockMode(t *testing.T) {
	prov, err := buildAuthProvider(config.AuthConfig{
		Mode: config.AuthModeMock,
		DevAuth: config.DevAuthConfig{
			UserID: "dev-user",
			Email:  "dev@example.com",
			Groups: []string{"admins"},
		},
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, prov)
}

func TestBuildAuthProvider_OAuthMissingConfig(t *testing.T) {
	_, err := buildAuthProvider(config.AuthConfig{Mode: config.AuthModeOAuth}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAUTH_DISCOVERY_URL")
}

func TestBuildAuthProvider_UnknownMode(t *testing.T) {
	_, err := buildAuthProvider(config.AuthConfig{Mode: config.AuthMode("ldap")}, nil)
	require.Error(t, err)
}
