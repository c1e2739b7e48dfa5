package store

import (
	"context"
	"fmt"

	"fitcoach-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const workoutColumns = `id, trainer_id, athlete_id, date, title, exercises, notes, completed, completion_data, observations, created_at`

type WorkoutFilter struct {
	TrainerID string
	AthleteID string
	Date      string
}

type WorkoutStore struct {
	db *sqlx.DB
}

func (s *WorkoutStore) Create(ctx context.Context, w *models.Workout) error {
	stamp(&w.CreatedAt)
	if w.Exercises == nil {
		w.Exercises = models.ExerciseList{}
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
INSERT INTO workouts (`+workoutColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		w.ID, w.TrainerID, w.AthleteID, w.Date, w.Title, w.Exercises, w.Notes,
		w.Completed, w.CompletionData, w.Observations, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert workout -> %w", err)
	}
	return nil
}

func (s *WorkoutStore) Get(ctx context.Context, id string) (models.Workout, error) {
	var w models.Workout
	err := s.db.GetContext(ctx, &w, s.db.Rebind(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`), id)
	return w, notFound(err)
}

// List returns matching workouts, newest date first.
func (s *WorkoutStore) List(ctx context.Context, f WorkoutFilter) ([]models.Workout, error) {
	var cond where
	if f.TrainerID != "" {
		cond.add("trainer_id = ?", f.TrainerID)
	}
	if f.AthleteID != "" {
		cond.add("athlete_id = ?", f.AthleteID)
	}
	if f.Date != "" {
		cond.add("date = ?", f.Date)
	}
	workouts := []models.Workout{}
	query := `SELECT ` + workoutColumns + ` FROM workouts` + cond.String() + ` ORDER BY date DESC, created_at DESC`
	if err := s.db.SelectContext(ctx, &workouts, s.db.Rebind(query), cond.args...); err != nil {
		return nil, fmt.Errorf("list workouts -> %w", err)
	}
	return workouts, nil
}

// Update writes back every mutable column of w.
func (s *WorkoutStore) Update(ctx context.Context, w models.Workout) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
UPDATE workouts
SET title = ?,
    exercises = ?,
    notes = ?,
    completed = ?,
    completion_data = ?,
    observations = ?
WHERE id = ?`),
		w.Title, w.Exercises, w.Notes, w.Completed, w.CompletionData, w.Observations, w.ID)
	if err != nil {
		return fmt.Errorf("update workout -> %w", err)
	}
	return affectedOne(res)
}

// Delete removes a workout owned by trainerID.
func (s *WorkoutStore) Delete(ctx context.Context, id, trainerID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM workouts WHERE id = ? AND trainer_id = ?`), id, trainerID)
	if err != nil {
		return fmt.Errorf("delete workout -> %w", err)
	}
	return affectedOne(res)
}

func (s *WorkoutStore) DeleteByAthlete(ctx context.Context, athleteID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM workouts WHERE athlete_id = ?`), athleteID)
	if err != nil {
		return 0, fmt.Errorf("delete athlete workouts -> %w", err)
	}
	return res.RowsAffected()
}
