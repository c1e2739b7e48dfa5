package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) CreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req AthleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	athlete, err := s.Services.Athletes.Create(r.Context(), CurrentIdentity(r), services.AthleteInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Sport:    req.Sport,
		Position: req.Position,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toUserDTO(athlete))
}

func (s *Server) ListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.Services.Athletes.List(r.Context(), CurrentIdentity(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTOs(athletes))
}

func (s *Server) GetAthlete(w http.ResponseWriter, r *http.Request) {
	athlete, err := s.Services.Athletes.Get(r.Context(), CurrentIdentity(r), chi.URLParam(r, "athleteId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTO(athlete))
}

func (s *Server) DeleteAthlete(w http.ResponseWriter, r *http.Request) {
	if err := s.Services.Athletes.Delete(r.Context(), CurrentIdentity(r), chi.URLParam(r, "athleteId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Athlete deleted"})
}
