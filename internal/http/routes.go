package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/janasethu/civic-api/internal/domain/realtime"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
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
	Health        *HealthHandlers
	CookieDomain  string
	Logger        *slog.Logger

	// UploadsDir and UploadsPublicPath wire the static file route for
	// stored uploads. The route is skipped when UploadsDir is empty.
	UploadsDir        string
	UploadsPublicPath string
}

// NewRouter creates and configures a new HTTP router.
//
// Route groups and their gates:
//   - public routes carry no session requirement
//   - /api routes for signed-in citizens pass through RequireAuth
//   - /api/admin routes pass through RequireElevated, which admits only a
//     session with a live elevation grant
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	requireAuth := RequireAuth(services.Auth)
	requireElevated := RequireElevated(services.Auth)
	optionalAuth := OptionalAuth(services.Auth)

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	registerAuthRoutes(mux, authHandlers)

	registerProfileRoutes(mux, &ProfileHandlers{Svc: services.Profiles}, requireAuth, requireElevated)
	registerComplaintRoutes(mux, &ComplaintHandlers{Svc: services.Complaints}, requireAuth, requireElevated)
	registerEventRoutes(mux, &EventHandlers{Svc: services.Events}, requireElevated)
	registerPollRoutes(mux, &PollHandlers{Svc: services.Polls}, requireAuth, requireElevated, optionalAuth)
	registerAlertRoutes(mux, &AlertHandlers{Svc: services.Alerts}, requireElevated)
	registerVerificationRoutes(mux, &VerificationHandlers{Svc: services.Verifications}, requireAuth, requireElevated)
	registerContactRoutes(mux, &ContactHandlers{Svc: services.Contact}, requireElevated)
	registerChatRoutes(mux, &ChatHandlers{Svc: services.Chat}, requireAuth)

	if services.Reports != nil {
		mux.Handle("GET /api/admin/reports/complaints",
			requireElevated(http.HandlerFunc((&ReportHandlers{Svc: services.Reports}).Complaints)))
	}
	if services.Uploads != nil {
		mux.Handle("POST /api/uploads",
			requireAuth(http.HandlerFunc((&UploadHandlers{Store: services.Uploads}).Create)))
	}
	if services.UploadsDir != "" {
		prefix := strings.TrimSuffix(services.UploadsPublicPath, "/")
		if prefix == "" {
			prefix = "/uploads"
		}
		mux.Handle("GET "+prefix+"/",
			http.StripPrefix(prefix+"/", http.FileServer(http.Dir(services.UploadsDir))))
	}
	if services.Notifier != nil {
		mux.HandleFunc("GET /api/stream/{topic}", (&StreamHandlers{Notifier: services.Notifier}).Stream)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /health", http.HandlerFunc(healthHandler))
	health := services.Health
	if health == nil {
		health = &HealthHandlers{}
	}
	mux.HandleFunc("GET /health/ready", health.Ready)

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/signup", h.SignUp)
	mux.HandleFunc("POST /api/auth/signin", h.SignIn)
	mux.HandleFunc("POST /api/auth/signout", h.SignOut)
	mux.HandleFunc("GET /api/auth/session", h.Status)
	mux.HandleFunc("POST /api/auth/admin-mode", h.EnterAdminMode)
	mux.HandleFunc("DELETE /api/auth/admin-mode", h.ExitAdminMode)
	mux.HandleFunc("POST /api/auth/refresh", h.RefreshElevation)

	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
}

func registerProfileRoutes(
	mux *http.ServeMux,
	h *ProfileHandlers,
	requireAuth, requireElevated func(http.Handler) http.Handler,
) {
	mux.Handle("GET /api/profile", requireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("PUT /api/profile", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("PATCH /api/admin/users/{id}/role", requireElevated(http.HandlerFunc(h.SetRole)))
}

func registerComplaintRoutes(
	mux *http.ServeMux,
	h *ComplaintHandlers,
	requireAuth, requireElevated func(http.Handler) http.Handler,
) {
	mux.Handle("POST /api/complaints", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/complaints", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/complaints/mine", requireAuth(http.HandlerFunc(h.Mine)))
	mux.Handle("GET /api/complaints/{id}", requireAuth(http.HandlerFunc(h.GetByID)))

	mux.Handle("PATCH /api/admin/complaints/{id}/status", requireElevated(http.HandlerFunc(h.UpdateStatus)))
	mux.Handle("DELETE /api/admin/complaints/{id}", requireElevated(http.HandlerFunc(h.Delete)))
}

func registerEventRoutes(
	mux *http.ServeMux,
	h *EventHandlers,
	requireElevated func(http.Handler) http.Handler,
) {
	mux.HandleFunc("GET /api/events", h.List)
	mux.HandleFunc("GET /api/events/{id}", h.GetByID)

	mux.Handle("POST /api/admin/events", requireElevated(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/admin/events/{id}", requireElevated(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/events/{id}", requireElevated(http.HandlerFunc(h.Delete)))
}

func registerPollRoutes(
	mux *http.ServeMux,
	h *PollHandlers,
	requireAuth, requireElevated, optionalAuth func(http.Handler) http.Handler,
) {
	mux.HandleFunc("GET /api/polls", h.List)
	// Vote status rides along when the caller happens to be signed in.
	mux.Handle("GET /api/polls/{id}", optionalAuth(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/polls/{id}/vote", requireAuth(http.HandlerFunc(h.Vote)))

	mux.Handle("POST /api/admin/polls", requireElevated(http.HandlerFunc(h.Create)))
	mux.Handle("DELETE /api/admin/polls/{id}", requireElevated(http.HandlerFunc(h.Delete)))
}

func registerAlertRoutes(
	mux *http.ServeMux,
	h *AlertHandlers,
	requireElevated func(http.Handler) http.Handler,
) {
	mux.HandleFunc("GET /api/alerts", h.List)
	mux.HandleFunc("GET /api/alerts/{id}", h.GetByID)

	mux.Handle("POST /api/admin/alerts", requireElevated(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/admin/alerts/{id}", requireElevated(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/alerts/{id}", requireElevated(http.HandlerFunc(h.Delete)))
}

func registerVerificationRoutes(
	mux *http.ServeMux,
	h *VerificationHandlers,
	requireAuth, requireElevated func(http.Handler) http.Handler,
) {
	mux.Handle("POST /api/verifications", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/verifications/mine", requireAuth(http.HandlerFunc(h.Mine)))

	mux.Handle("GET /api/admin/verifications", requireElevated(http.HandlerFunc(h.List)))
	mux.Handle("PATCH /api/admin/verifications/{id}", requireElevated(http.HandlerFunc(h.Review)))
}

func registerContactRoutes(
	mux *http.ServeMux,
	h *ContactHandlers,
	requireElevated func(http.Handler) http.Handler,
) {
	mux.HandleFunc("POST /api/contact", h.Create)
	mux.Handle("GET /api/admin/contact-messages", requireElevated(http.HandlerFunc(h.List)))
}

func registerChatRoutes(
	mux *http.ServeMux,
	h *ChatHandlers,
	requireAuth func(http.Handler) http.Handler,
) {
	mux.Handle("POST /api/chat", requireAuth(http.HandlerFunc(h.Post)))
	mux.Handle("GET /api/chat", requireAuth(http.HandlerFunc(h.List)))
}
