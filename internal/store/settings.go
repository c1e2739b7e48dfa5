package store

import (
	"context"
	"fmt"

	"fitcoach-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const settingsColumns = `user_id, notifications_enabled, notifications_workouts, notifications_tests, weight_unit, height_unit, language`

type SettingsStore struct {
	db *sqlx.DB
}

func (s *SettingsStore) Get(ctx context.Context, userID string) (models.Settings, error) {
	var row models.Settings
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+settingsColumns+` FROM settings WHERE user_id = ?`), userID)
	return row, notFound(err)
}

func (s *SettingsStore) Insert(ctx context.Context, row models.Settings) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
INSERT INTO settings (`+settingsColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		row.UserID, row.NotificationsEnabled, row.NotificationsWorkouts, row.NotificationsTests,
		row.WeightUnit, row.HeightUnit, row.Language)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert settings -> %w", err)
	}
	return nil
}

func (s *SettingsStore) Update(ctx context.Context, row models.Settings) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
UPDATE settings
SET notifications_enabled = ?,
    notifications_workouts = ?,
    notifications_tests = ?,
    weight_unit = ?,
    height_unit = ?,
    language = ?
WHERE user_id = ?`),
		row.NotificationsEnabled, row.NotificationsWorkouts, row.NotificationsTests,
		row.WeightUnit, row.HeightUnit, row.Language, row.UserID)
	if err != nil {
		return fmt.Errorf("update settings -> %w", err)
	}
	return affectedOne(res)
}

func (s *SettingsStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM settings WHERE user_id = ?`), userID)
	if err != nil {
		return fmt.Errorf("delete settings -> %w", err)
	}
	return nil
}
