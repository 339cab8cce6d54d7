package httpapi

import (
	"log"
	"net/http"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"
)

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload accepts a multipart file and stores it in the object store.
// The file is validated (type and size) before any storage call is made.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	if s.Storage == nil {
		WriteError(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadBytes+4096)
	if err := r.ParseMultipartForm(services.MaxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "File is too large. The limit is 10MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	ext, err := services.ValidateUpload(header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		if !mapServiceError(w, err) {
			WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	key := services.ObjectKey(ext)
	url, err := s.Storage.Upload(r.Context(), key, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		log.Printf("upload %s: %v", key, err)
		WriteError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	WriteJSON(w, http.StatusCreated, UploadResponse{URL: url, Key: key})
}
