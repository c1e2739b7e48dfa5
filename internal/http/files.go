package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type UploadResponse struct {
	StoragePath string `json:"storage_path"`
	FileID      string `json:"file_id"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// multipart framing on top of the file itself
const multipartOverhead = 1 << 20

func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequest(w, "File is empty or too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "File is empty")
		return
	}
	defer file.Close()

	asset, err := s.Services.Media.Save(r.Context(), CurrentIdentity(r), services.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, UploadResponse{
		StoragePath: asset.StoragePath,
		FileID:      asset.ID,
		ContentType: asset.ContentType,
		Size:        asset.SizeBytes,
	})
}

func (s *Server) FileContent(w http.ResponseWriter, r *http.Request) {
	asset, fullPath, err := s.Services.Media.Open(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeFile(w, r, fullPath)
}

func (s *Server) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.Services.Media.Delete(r.Context(), CurrentIdentity(r), chi.URLParam(r, "*")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "File deleted"})
}
