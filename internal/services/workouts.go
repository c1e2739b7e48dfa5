package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fitcoach-backend-go/internal/csvimport"
	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WorkoutService struct {
	*deps
	prefs *SettingsService
}

type WorkoutInput struct {
	AthleteID string
	Date      string
	Title     string
	Exercises []models.Exercise
	Notes     string
}

type WorkoutQuery struct {
	AthleteID string
	Date      string
}

func (s *WorkoutService) Create(ctx context.Context, caller Identity, in WorkoutInput) (models.Workout, error) {
	if err := s.authorizeCreate(ctx, caller, in.AthleteID); err != nil {
		return models.Workout{}, err
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return models.Workout{}, ErrBadRequest("date must be YYYY-MM-DD")
	}
	w := models.Workout{
		ID:        uuid.NewString(),
		TrainerID: caller.UserID,
		AthleteID: in.AthleteID,
		Date:      in.Date,
		Title:     strings.TrimSpace(in.Title),
		Exercises: append(models.ExerciseList{}, in.Exercises...),
		Notes:     in.Notes,
		CreatedAt: s.now().UTC(),
	}
	if err := s.workouts.Create(ctx, &w); err != nil {
		return models.Workout{}, WrapError(err, "create workout")
	}
	s.events.WorkoutsCreated("manual", 1)
	return w, nil
}

// Import creates one workout per date found in a CSV upload. Titles and
// notes follow the trainer's language setting.
func (s *WorkoutService) Import(ctx context.Context, caller Identity, athleteID string, r io.Reader) ([]models.Workout, error) {
	if err := s.authorizeCreate(ctx, caller, athleteID); err != nil {
		return nil, err
	}
	days, err := csvimport.Parse(r, s.today())
	if err != nil {
		return nil, ErrBadRequest(fmt.Sprintf("Invalid CSV: %v", err))
	}
	titleFormat, notes := csvimport.Labels(s.prefs.language(ctx, caller.UserID))
	created := make([]models.Workout, 0, len(days))
	for _, day := range days {
		w := models.Workout{
			ID:        uuid.NewString(),
			TrainerID: caller.UserID,
			AthleteID: athleteID,
			Date:      day.Date,
			Title:     fmt.Sprintf(titleFormat, day.Date),
			Exercises: day.Exercises,
			Notes:     notes,
			CreatedAt: s.now().UTC(),
		}
		if err := s.workouts.Create(ctx, &w); err != nil {
			return created, WrapError(err, "import workouts")
		}
		created = append(created, w)
	}
	s.events.WorkoutsCreated("csv", len(created))
	s.log.Info("workouts imported",
		zap.String("trainer_id", caller.UserID),
		zap.String("athlete_id", athleteID),
		zap.Int("count", len(created)),
	)
	return created, nil
}

func (s *WorkoutService) authorizeCreate(ctx context.Context, caller Identity, athleteID string) error {
	if caller.Role != models.RoleTrainer {
		return s.policy.Authorize(caller, ActWorkoutCreate, Resource{}).Err()
	}
	if athleteID == "" {
		return ErrBadRequest("athlete_id is required")
	}
	res, err := s.athleteResource(ctx, athleteID)
	if err != nil {
		return err
	}
	return s.policy.Authorize(caller, ActWorkoutCreate, res).Err()
}

// List scopes athletes to their own workouts and trainers to the ones they
// created.
func (s *WorkoutService) List(ctx context.Context, caller Identity, q WorkoutQuery) ([]models.Workout, error) {
	filter := store.WorkoutFilter{Date: q.Date}
	if caller.Role == models.RoleAthlete {
		filter.AthleteID = caller.UserID
	} else {
		filter.TrainerID = caller.UserID
		filter.AthleteID = q.AthleteID
	}
	workouts, err := s.workouts.List(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "list workouts")
	}
	return workouts, nil
}

func (s *WorkoutService) Get(ctx context.Context, caller Identity, id string) (models.Workout, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return models.Workout{}, err
	}
	if err := s.policy.Authorize(caller, ActWorkoutRead, workoutResource(w)).Err(); err != nil {
		return models.Workout{}, err
	}
	return w, nil
}

// Update applies a partial update, typically the athlete marking the
// workout completed.
func (s *WorkoutService) Update(ctx context.Context, caller Identity, id string, patch models.WorkoutPatch) (models.Workout, error) {
	if patch.IsEmpty() {
		return models.Workout{}, ErrBadRequest("No data to update")
	}
	w, err := s.load(ctx, id)
	if err != nil {
		return models.Workout{}, err
	}
	if err := s.policy.Authorize(caller, ActWorkoutUpdate, workoutResource(w)).Err(); err != nil {
		return models.Workout{}, err
	}
	patch.Apply(&w)
	if err := s.workouts.Update(ctx, w); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Workout{}, ErrNotFound("Workout not found")
		}
		return models.Workout{}, WrapError(err, "update workout")
	}
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, caller Identity, id string) error {
	if caller.Role != models.RoleTrainer {
		return s.policy.Authorize(caller, ActWorkoutDelete, Resource{}).Err()
	}
	w, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(caller, ActWorkoutDelete, workoutResource(w)).Err(); err != nil {
		return err
	}
	err = s.workouts.Delete(ctx, id, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound("Workout not found")
	}
	if err != nil {
		return WrapError(err, "delete workout")
	}
	return nil
}

func (s *WorkoutService) load(ctx context.Context, id string) (models.Workout, error) {
	w, err := s.workouts.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Workout{}, ErrNotFound("Workout not found")
	}
	if err != nil {
		return models.Workout{}, WrapError(err, "get workout")
	}
	return w, nil
}

func workoutResource(w models.Workout) Resource {
	return Resource{AthleteID: w.AthleteID, OwnerTrainerID: w.TrainerID}
}
