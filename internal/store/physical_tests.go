package store

import (
	"context"
	"fmt"

	"fitcoach-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const testColumns = `id, athlete_id, created_by, test_type, test_name, custom_name, value, value_left, value_right, unit, date, notes, created_at`

type TestFilter struct {
	AthleteID string
	// AthleteIDs restricts results to any of these athletes when non-empty.
	AthleteIDs []string
	TestType   string
	TestName   string
}

type TestStore struct {
	db *sqlx.DB
}

func (s *TestStore) Create(ctx context.Context, t *models.PhysicalTest) error {
	stamp(&t.CreatedAt)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
INSERT INTO physical_tests (`+testColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.AthleteID, t.CreatedBy, t.TestType, t.TestName, t.CustomName,
		t.Value, t.ValueLeft, t.ValueRight, t.Unit, t.Date, t.Notes, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert test -> %w", err)
	}
	return nil
}

func (s *TestStore) Get(ctx context.Context, id string) (models.PhysicalTest, error) {
	var t models.PhysicalTest
	err := s.db.GetContext(ctx, &t, s.db.Rebind(`SELECT `+testColumns+` FROM physical_tests WHERE id = ?`), id)
	return t, notFound(err)
}

// List returns matching tests, newest date first.
func (s *TestStore) List(ctx context.Context, f TestFilter) ([]models.PhysicalTest, error) {
	var cond where
	if f.AthleteID != "" {
		cond.add("athlete_id = ?", f.AthleteID)
	}
	if len(f.AthleteIDs) > 0 {
		cond.add("athlete_id IN (?)", f.AthleteIDs)
	}
	if f.TestType != "" {
		cond.add("test_type = ?", f.TestType)
	}
	if f.TestName != "" {
		cond.add("test_name = ?", f.TestName)
	}
	tests := []models.PhysicalTest{}
	query, args, err := sqlx.In(`SELECT `+testColumns+` FROM physical_tests`+cond.String()+` ORDER BY date DESC, created_at DESC`, cond.args...)
	if err != nil {
		return nil, fmt.Errorf("list tests -> %w", err)
	}
	if err := s.db.SelectContext(ctx, &tests, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tests -> %w", err)
	}
	return tests, nil
}

// History is the (athlete, test name) series in chronological order.
func (s *TestStore) History(ctx context.Context, athleteID, testName string) ([]models.PhysicalTest, error) {
	tests := []models.PhysicalTest{}
	err := s.db.SelectContext(ctx, &tests, s.db.Rebind(`
SELECT `+testColumns+` FROM physical_tests
WHERE athlete_id = ? AND test_name = ?
ORDER BY date ASC, created_at ASC`), athleteID, testName)
	if err != nil {
		return nil, fmt.Errorf("test history -> %w", err)
	}
	return tests, nil
}

func (s *TestStore) Update(ctx context.Context, t models.PhysicalTest) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
UPDATE physical_tests
SET value = ?,
    unit = ?,
    notes = ?,
    value_left = ?,
    value_right = ?
WHERE id = ?`),
		t.Value, t.Unit, t.Notes, t.ValueLeft, t.ValueRight, t.ID)
	if err != nil {
		return fmt.Errorf("update test -> %w", err)
	}
	return affectedOne(res)
}

func (s *TestStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM physical_tests WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete test -> %w", err)
	}
	return affectedOne(res)
}

func (s *TestStore) DeleteByAthlete(ctx context.Context, athleteID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM physical_tests WHERE athlete_id = ?`), athleteID)
	if err != nil {
		return 0, fmt.Errorf("delete athlete tests -> %w", err)
	}
	return res.RowsAffected()
}
