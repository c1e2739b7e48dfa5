package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5/middleware"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, string(services.KindBadRequest), message)
}

// writeServiceError renders typed service errors and ozzo validation errors
// with their own status; anything else is logged and hidden behind a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteError(w, serr.Status(), string(serr.Kind), serr.Message)
		return
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		badRequest(w, verrs.Error())
		return
	}
	s.Log.Error("request failed",
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	WriteError(w, http.StatusInternalServerError, "internal", "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "Invalid JSON body")
		return false
	}
	return true
}
