package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/services"
)

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	session, err := s.Services.Accounts.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	session, err := s.Services.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := s.Services.Accounts.Me(r.Context(), CurrentIdentity(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MeResponse{
		UserDTO:  toUserDTO(profile.User),
		Settings: toSettingsDTO(profile.Settings),
	})
}
