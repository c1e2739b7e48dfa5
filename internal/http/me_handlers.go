package httpapi

import (
	"net/http"

	"fitcoach-backend-go/internal/models"
)

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	user, err := s.Services.Accounts.UpdateProfile(r.Context(), CurrentIdentity(r), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTO(user))
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.Services.Accounts.ChangePassword(r.Context(), CurrentIdentity(r), req.CurrentPassword, req.NewPassword); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password updated"})
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Services.Settings.Get(r.Context(), CurrentIdentity(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSettingsDTO(settings))
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	settings, err := s.Services.Settings.Update(r.Context(), CurrentIdentity(r), models.SettingsPatch(req))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toSettingsDTO(settings))
}
