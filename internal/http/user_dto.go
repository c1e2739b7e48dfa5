package httpapi

import (
	"time"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/services"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TrainerID *string   `json:"trainer_id"`
	Sport     string    `json:"sport"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type SettingsDTO struct {
	NotificationsEnabled  bool   `json:"notifications_enabled"`
	NotificationsWorkouts bool   `json:"notifications_workouts"`
	NotificationsTests    bool   `json:"notifications_tests"`
	WeightUnit            string `json:"weight_unit"`
	HeightUnit            string `json:"height_unit"`
	Language              string `json:"language"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

// MeResponse flattens the user and nests their settings.
type MeResponse struct {
	UserDTO
	Settings SettingsDTO `json:"settings"`
}

func toUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		TrainerID: u.TrainerID,
		Sport:     u.Sport,
		Position:  u.Position,
		CreatedAt: u.CreatedAt,
	}
}

func toUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

func toSettingsDTO(s models.Settings) SettingsDTO {
	return SettingsDTO{
		NotificationsEnabled:  s.NotificationsEnabled,
		NotificationsWorkouts: s.NotificationsWorkouts,
		NotificationsTests:    s.NotificationsTests,
		WeightUnit:            s.WeightUnit,
		HeightUnit:            s.HeightUnit,
		Language:              s.Language,
	}
}

func toSessionResponse(s services.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      toUserDTO(s.User),
	}
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
