package services

import (
	"context"
	"errors"
	"slices"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"
)

type SettingsService struct {
	*deps
}

// Get returns the caller's settings, storing the defaults on first use.
func (s *SettingsService) Get(ctx context.Context, caller Identity) (models.Settings, error) {
	row, err := s.settings.Get(ctx, caller.UserID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Settings{}, WrapError(err, "load settings")
	}
	row = models.DefaultSettings(caller.UserID)
	err = s.settings.Insert(ctx, row)
	if errors.Is(err, store.ErrDuplicate) {
		// created by a concurrent request
		return s.settings.Get(ctx, caller.UserID)
	}
	if err != nil {
		return models.Settings{}, WrapError(err, "create settings")
	}
	return row, nil
}

func (s *SettingsService) Update(ctx context.Context, caller Identity, patch models.SettingsPatch) (models.Settings, error) {
	if patch.IsEmpty() {
		return models.Settings{}, ErrBadRequest("No data to update")
	}
	if err := validateSettings(patch); err != nil {
		return models.Settings{}, err
	}
	row, err := s.Get(ctx, caller)
	if err != nil {
		return models.Settings{}, err
	}
	patch.Apply(&row)
	if err := s.settings.Update(ctx, row); err != nil {
		return models.Settings{}, WrapError(err, "update settings")
	}
	return row, nil
}

// peek is Get without the insert.
func (s *SettingsService) peek(ctx context.Context, userID string) (models.Settings, error) {
	row, err := s.settings.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return models.Settings{}, WrapError(err, "load settings")
	}
	return row, nil
}

// language is the caller's UI language, "es" when unknown.
func (s *SettingsService) language(ctx context.Context, userID string) string {
	row, err := s.peek(ctx, userID)
	if err != nil || row.Language == "" {
		return "es"
	}
	return row.Language
}

func validateSettings(p models.SettingsPatch) error {
	if p.WeightUnit != nil && !slices.Contains(models.WeightUnits, *p.WeightUnit) {
		return ErrBadRequest("weight_unit must be kg or lb")
	}
	if p.HeightUnit != nil && !slices.Contains(models.HeightUnits, *p.HeightUnit) {
		return ErrBadRequest("height_unit must be cm or ft")
	}
	if p.Language != nil && !slices.Contains(models.Languages, *p.Language) {
		return ErrBadRequest("language must be es or en")
	}
	return nil
}
