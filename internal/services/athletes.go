package services

import (
	"context"
	"errors"
	"strings"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AthleteService struct {
	*deps
}

type AthleteInput struct {
	Email    string
	Password string
	Name     string
	Sport    string
	Position string
}

func (s *AthleteService) Create(ctx context.Context, caller Identity, in AthleteInput) (models.User, error) {
	if err := s.policy.Authorize(caller, ActAthleteCreate, Resource{}).Err(); err != nil {
		return models.User{}, err
	}
	hash, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return models.User{}, WrapError(err, "hash password")
	}
	trainerID := caller.UserID
	athlete := models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         models.RoleAthlete,
		TrainerID:    &trainerID,
		Sport:        strings.TrimSpace(in.Sport),
		Position:     strings.TrimSpace(in.Position),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, &athlete); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.User{}, ErrConflict("Email already registered")
		}
		return models.User{}, WrapError(err, "create athlete")
	}
	return athlete, nil
}

// List returns the caller's roster. Athletes have no roster.
func (s *AthleteService) List(ctx context.Context, caller Identity) ([]models.User, error) {
	if err := s.policy.Authorize(caller, ActAthleteList, Resource{}).Err(); err != nil {
		return nil, err
	}
	if caller.Role != models.RoleTrainer {
		return []models.User{}, nil
	}
	athletes, err := s.users.ListAthletes(ctx, caller.UserID)
	if err != nil {
		return nil, WrapError(err, "list athletes")
	}
	return athletes, nil
}

// Get reports NotFound when id is not an athlete and Forbidden when the
// caller may not see it.
func (s *AthleteService) Get(ctx context.Context, caller Identity, id string) (models.User, error) {
	athlete, err := s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !athlete.IsAthlete()) {
		return models.User{}, ErrNotFound("Athlete not found")
	}
	if err != nil {
		return models.User{}, WrapError(err, "get athlete")
	}
	res := Resource{AthleteID: athlete.ID}
	if athlete.TrainerID != nil {
		res.AthleteTrainerID = *athlete.TrainerID
	}
	if err := s.policy.Authorize(caller, ActAthleteRead, res).Err(); err != nil {
		return models.User{}, err
	}
	return athlete, nil
}

// Delete removes an athlete from the caller's roster, then their workouts,
// tests and settings. The follow-up deletes are not atomic with the first.
func (s *AthleteService) Delete(ctx context.Context, caller Identity, id string) error {
	res, err := s.athleteResource(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(caller, ActAthleteDelete, res).Err(); err != nil {
		return err
	}
	err = s.users.DeleteAthlete(ctx, id, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound("Athlete not found")
	}
	if err != nil {
		return WrapError(err, "delete athlete")
	}
	workouts, err := s.workouts.DeleteByAthlete(ctx, id)
	if err != nil {
		return WrapError(err, "delete athlete workouts")
	}
	tests, err := s.tests.DeleteByAthlete(ctx, id)
	if err != nil {
		return WrapError(err, "delete athlete tests")
	}
	if err := s.settings.Delete(ctx, id); err != nil {
		return WrapError(err, "delete athlete settings")
	}
	s.log.Info("athlete deleted",
		zap.String("athlete_id", id),
		zap.String("trainer_id", caller.UserID),
		zap.Int64("workouts", workouts),
		zap.Int64("tests", tests),
	)
	return nil
}
