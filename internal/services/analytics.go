package services

import (
	"context"
	"math"
	"sort"
	"time"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"
)

type Summary struct {
	TotalWorkouts     int                            `json:"total_workouts"`
	CompletedWorkouts int                            `json:"completed_workouts"`
	TotalTests        int                            `json:"total_tests"`
	LatestTests       map[string]models.PhysicalTest `json:"latest_tests"`
	WeekWorkouts      int                            `json:"week_workouts"`
	CompletionRate    float64                        `json:"completion_rate"`
}

type TestProgress struct {
	History       []models.PhysicalTest `json:"history"`
	ChangePercent float64               `json:"change_percent"`
	Latest        models.PhysicalTest   `json:"latest"`
}

// BuildSummary aggregates one athlete's workouts and tests as of now.
// Workouts dated within the last seven days count towards WeekWorkouts.
func BuildSummary(workouts []models.Workout, tests []models.PhysicalTest, now time.Time) Summary {
	weekStart := now.UTC().AddDate(0, 0, -7).Format(models.DateLayout)
	sum := Summary{
		TotalWorkouts: len(workouts),
		TotalTests:    len(tests),
		LatestTests:   map[string]models.PhysicalTest{},
	}
	for _, w := range workouts {
		if w.Completed {
			sum.CompletedWorkouts++
		}
		if w.Date >= weekStart {
			sum.WeekWorkouts++
		}
	}
	for _, t := range tests {
		current, ok := sum.LatestTests[t.TestName]
		if !ok || before(current, t) {
			sum.LatestTests[t.TestName] = t
		}
	}
	if sum.TotalWorkouts > 0 {
		sum.CompletionRate = round1(float64(sum.CompletedWorkouts) / float64(sum.TotalWorkouts) * 100)
	}
	return sum
}

// BuildProgress groups tests by name into chronological series. The change
// is measured from the first to the last value and is 0 for a series of one
// or one starting at 0.
func BuildProgress(tests []models.PhysicalTest) map[string]TestProgress {
	series := map[string][]models.PhysicalTest{}
	for _, t := range tests {
		series[t.TestName] = append(series[t.TestName], t)
	}
	out := make(map[string]TestProgress, len(series))
	for name, history := range series {
		sort.SliceStable(history, func(i, j int) bool { return before(history[i], history[j]) })
		first, last := history[0].Value, history[len(history)-1].Value
		change := 0.0
		if len(history) >= 2 && first != 0 {
			change = round1((last - first) / first * 100)
		}
		out[name] = TestProgress{
			History:       history,
			ChangePercent: change,
			Latest:        history[len(history)-1],
		}
	}
	return out
}

func before(a, b models.PhysicalTest) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// round1 rounds to one decimal, halves to even.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

type AnalyticsService struct {
	*deps
}

func (s *AnalyticsService) Summary(ctx context.Context, caller Identity, athleteID string) (Summary, error) {
	target, err := s.target(ctx, caller, athleteID)
	if err != nil {
		return Summary{}, err
	}
	workouts, err := s.workouts.List(ctx, store.WorkoutFilter{AthleteID: target})
	if err != nil {
		return Summary{}, WrapError(err, "summary workouts")
	}
	tests, err := s.tests.List(ctx, store.TestFilter{AthleteID: target})
	if err != nil {
		return Summary{}, WrapError(err, "summary tests")
	}
	return BuildSummary(workouts, tests, s.now()), nil
}

func (s *AnalyticsService) Progress(ctx context.Context, caller Identity, athleteID string) (map[string]TestProgress, error) {
	target, err := s.target(ctx, caller, athleteID)
	if err != nil {
		return nil, err
	}
	tests, err := s.tests.List(ctx, store.TestFilter{AthleteID: target})
	if err != nil {
		return nil, WrapError(err, "progress tests")
	}
	return BuildProgress(tests), nil
}

// target picks whose data to aggregate: a trainer may name an athlete,
// everyone else gets their own.
func (s *AnalyticsService) target(ctx context.Context, caller Identity, athleteID string) (string, error) {
	if caller.Role != models.RoleTrainer || athleteID == "" {
		return caller.UserID, s.policy.Authorize(caller, ActAnalyticsRead, Resource{}).Err()
	}
	res := Resource{AthleteID: athleteID}
	if s.policy.StrictOwnership {
		var err error
		if res, err = s.athleteResource(ctx, athleteID); err != nil {
			return "", err
		}
	}
	if err := s.policy.Authorize(caller, ActAnalyticsRead, res).Err(); err != nil {
		return "", err
	}
	return athleteID, nil
}
