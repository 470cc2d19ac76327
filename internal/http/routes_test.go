package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
)

func newTestRouter(auth AuthServiceInterface) http.Handler {
	return NewRouter(RouterServices{Auth: auth})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/admin/events"},
		{http.MethodPost, "/api/admin/alerts"},
		{http.MethodPost, "/api/admin/polls"},
		{http.MethodGet, "/api/admin/verifications"},
		{http.MethodGet, "/api/admin/contact-messages"},
		{http.MethodPatch, "/api/admin/complaints/c1/status"},
		{http.MethodPatch, "/api/admin/users/u1/role"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}

// An authenticated but unelevated session is turned away from every admin
// route, even when its durable role is admin.
func TestRouter_AdminRoutesRequireElevation(t *testing.T) {
	auth := &stubAuthService{
		mockAuthServiceForMiddleware: mockAuthServiceForMiddleware{
			getSessionFunc: func(ctx context.Context, sessionID string) (domainauth.Session, error) {
				return domainauth.Session{
					ID:        sessionID,
					UserID:    "labelled-admin",
					Role:      domainauth.RoleAdmin,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		},
	}
	router := newTestRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/verifications", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_CitizenRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/complaints", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ServesStoredUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), []byte("png-bytes"), 0o644))

	router := NewRouter(RouterServices{
		Auth:              &stubAuthService{},
		UploadsDir:        dir,
		UploadsPublicPath: "/uploads",
	})

	req := httptest.NewRequest(http.MethodGet, "/uploads/photo.png", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}
