package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/ports"
)

// maxUploadBytes caps a single uploaded file at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandlers provides HTTP handlers for file uploads.
type UploadHandlers struct {
	Store ports.FileStore
}

// Create accepts a multipart upload under the "file" field and returns the
// stored object's name and public URL.
// POST /api/uploads.
func (h *UploadHandlers) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_file", Err: err})
		return
	}
	defer file.Close()

	name, err := h.Store.Save(r.Context(), header.Filename, file)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "upload_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"name": name,
		"url":  h.Store.PublicURL(name),
	})
}
