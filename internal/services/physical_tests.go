package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"github.com/google/uuid"
)

type TestService struct {
	*deps
}

type TestInput struct {
	AthleteID  string
	TestType   string
	TestName   string
	CustomName string
	Value      float64
	ValueLeft  *float64
	ValueRight *float64
	Unit       string
	Date       string
	Notes      string
}

type TestQuery struct {
	AthleteID string
	TestType  string
	TestName  string
}

// Create records a test result. Athletes may record their own; trainers
// may record for athletes on their roster.
func (s *TestService) Create(ctx context.Context, caller Identity, in TestInput) (models.PhysicalTest, error) {
	if in.AthleteID == "" && caller.Role == models.RoleAthlete {
		in.AthleteID = caller.UserID
	}
	if in.AthleteID == "" {
		return models.PhysicalTest{}, ErrBadRequest("athlete_id is required")
	}
	res := Resource{AthleteID: in.AthleteID}
	if caller.Role == models.RoleTrainer {
		var err error
		if res, err = s.athleteResource(ctx, in.AthleteID); err != nil {
			return models.PhysicalTest{}, err
		}
	}
	if err := s.policy.Authorize(caller, ActTestCreate, res).Err(); err != nil {
		return models.PhysicalTest{}, err
	}
	if in.Date == "" {
		in.Date = s.today()
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return models.PhysicalTest{}, ErrBadRequest("date must be YYYY-MM-DD")
	}
	t := models.PhysicalTest{
		ID:         uuid.NewString(),
		AthleteID:  in.AthleteID,
		CreatedBy:  caller.UserID,
		TestType:   strings.TrimSpace(in.TestType),
		TestName:   strings.TrimSpace(in.TestName),
		CustomName: strings.TrimSpace(in.CustomName),
		Value:      in.Value,
		ValueLeft:  in.ValueLeft,
		ValueRight: in.ValueRight,
		Unit:       strings.TrimSpace(in.Unit),
		Date:       in.Date,
		Notes:      in.Notes,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.tests.Create(ctx, &t); err != nil {
		return models.PhysicalTest{}, WrapError(err, "create test")
	}
	s.events.TestRecorded(t.TestType)
	return t, nil
}

// List returns an athlete's own tests. A trainer sees the given athlete's
// tests, or those of their whole roster when no athlete is named.
func (s *TestService) List(ctx context.Context, caller Identity, q TestQuery) ([]models.PhysicalTest, error) {
	filter := store.TestFilter{TestType: q.TestType, TestName: q.TestName}
	switch {
	case caller.Role == models.RoleAthlete:
		filter.AthleteID = caller.UserID
	case q.AthleteID != "":
		res, err := s.resourceFor(ctx, caller, q.AthleteID)
		if err != nil {
			return nil, err
		}
		if err := s.policy.Authorize(caller, ActTestList, res).Err(); err != nil {
			return nil, err
		}
		filter.AthleteID = q.AthleteID
	default:
		roster, err := s.users.ListAthletes(ctx, caller.UserID)
		if err != nil {
			return nil, WrapError(err, "list roster")
		}
		if len(roster) == 0 {
			return []models.PhysicalTest{}, nil
		}
		for _, athlete := range roster {
			filter.AthleteIDs = append(filter.AthleteIDs, athlete.ID)
		}
	}
	tests, err := s.tests.List(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "list tests")
	}
	return tests, nil
}

// History is one athlete's series for testName, oldest first.
func (s *TestService) History(ctx context.Context, caller Identity, athleteID, testName string) ([]models.PhysicalTest, error) {
	if athleteID == "" && caller.Role == models.RoleAthlete {
		athleteID = caller.UserID
	}
	if athleteID == "" || testName == "" {
		return nil, ErrBadRequest("athlete_id and test_name are required")
	}
	res, err := s.resourceFor(ctx, caller, athleteID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(caller, ActTestHistory, res).Err(); err != nil {
		return nil, err
	}
	tests, err := s.tests.History(ctx, athleteID, testName)
	if err != nil {
		return nil, WrapError(err, "test history")
	}
	return tests, nil
}

func (s *TestService) Update(ctx context.Context, caller Identity, id string, patch models.TestPatch) (models.PhysicalTest, error) {
	if patch.IsEmpty() {
		return models.PhysicalTest{}, ErrBadRequest("No data to update")
	}
	t, err := s.load(ctx, id)
	if err != nil {
		return models.PhysicalTest{}, err
	}
	res, err := s.resourceFor(ctx, caller, t.AthleteID)
	if err != nil {
		return models.PhysicalTest{}, err
	}
	if err := s.policy.Authorize(caller, ActTestUpdate, res).Err(); err != nil {
		return models.PhysicalTest{}, err
	}
	patch.Apply(&t)
	if err := s.tests.Update(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PhysicalTest{}, ErrNotFound("Test not found")
		}
		return models.PhysicalTest{}, WrapError(err, "update test")
	}
	return t, nil
}

func (s *TestService) Delete(ctx context.Context, caller Identity, id string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	res, err := s.athleteResource(ctx, t.AthleteID)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(caller, ActTestDelete, res).Err(); err != nil {
		return err
	}
	err = s.tests.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound("Test not found")
	}
	if err != nil {
		return WrapError(err, "delete test")
	}
	return nil
}

// resourceFor only looks the athlete up when the answer can change the
// decision, that is for trainers under strict ownership.
func (s *TestService) resourceFor(ctx context.Context, caller Identity, athleteID string) (Resource, error) {
	if caller.Role == models.RoleTrainer && s.policy.StrictOwnership {
		return s.athleteResource(ctx, athleteID)
	}
	return Resource{AthleteID: athleteID}, nil
}

func (s *TestService) load(ctx context.Context, id string) (models.PhysicalTest, error) {
	t, err := s.tests.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.PhysicalTest{}, ErrNotFound("Test not found")
	}
	if err != nil {
		return models.PhysicalTest{}, WrapError(err, "get test")
	}
	return t, nil
}
