package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/service"
)

// ReportHandlers provides HTTP handlers for ad-hoc reporting.
type ReportHandlers struct {
	Svc *service.ReportService
}

// Complaints evaluates a JMESPath query over recent complaints.
// GET /api/admin/reports/complaints?query=.
func (h *ReportHandlers) Complaints(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.ComplaintsReport(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"result": result})
}
