package services

import (
	"testing"
	"time"

	"fitcoach-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryEmpty(t *testing.T) {
	sum := BuildSummary(nil, nil, time.Now())
	assert.Equal(t, 0, sum.TotalWorkouts)
	assert.Equal(t, 0.0, sum.CompletionRate)
	assert.NotNil(t, sum.LatestTests)
	assert.Empty(t, sum.LatestTests)
}

func TestBuildSummary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	workouts := []models.Workout{
		{Date: "2026-03-09", Completed: true},
		{Date: "2026-03-03", Completed: false},
		{Date: "2026-03-02", Completed: false},
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []models.PhysicalTest{
		{ID: "a", TestName: "squat_rm", Value: 100, Date: "2026-02-01", CreatedAt: base},
		{ID: "b", TestName: "squat_rm", Value: 110, Date: "2026-03-01", CreatedAt: base},
		{ID: "c", TestName: "squat_rm", Value: 115, Date: "2026-03-01", CreatedAt: base.Add(time.Hour)},
		{ID: "d", TestName: "cmj", Value: 40, Date: "2026-01-15", CreatedAt: base},
	}

	sum := BuildSummary(workouts, tests, now)
	assert.Equal(t, 3, sum.TotalWorkouts)
	assert.Equal(t, 1, sum.CompletedWorkouts)
	assert.Equal(t, 4, sum.TotalTests)
	assert.Equal(t, 2, sum.WeekWorkouts)
	assert.Equal(t, 33.3, sum.CompletionRate)
	require.Len(t, sum.LatestTests, 2)
	assert.Equal(t, "c", sum.LatestTests["squat_rm"].ID)
	assert.Equal(t, "d", sum.LatestTests["cmj"].ID)
}

func TestBuildProgress(t *testing.T) {
	tests := []models.PhysicalTest{
		{TestName: "squat_rm", Value: 120, Date: "2026-02-10"},
		{TestName: "squat_rm", Value: 100, Date: "2026-01-10"},
		{TestName: "sprint_10m", Value: 1.8, Date: "2026-01-12"},
		{TestName: "from_zero", Value: 0, Date: "2026-01-01"},
		{TestName: "from_zero", Value: 5, Date: "2026-02-01"},
		{TestName: "drop", Value: 50, Date: "2026-01-01"},
		{TestName: "drop", Value: 45, Date: "2026-01-20"},
		{TestName: "drop", Value: 33, Date: "2026-02-20"},
	}
	progress := BuildProgress(tests)
	require.Len(t, progress, 4)

	squat := progress["squat_rm"]
	assert.Equal(t, 20.0, squat.ChangePercent)
	assert.Equal(t, 120.0, squat.Latest.Value)
	assert.Equal(t, []float64{100, 120}, []float64{squat.History[0].Value, squat.History[1].Value})

	single := progress["sprint_10m"]
	assert.Equal(t, 0.0, single.ChangePercent)
	assert.Equal(t, 1.8, single.Latest.Value)
	assert.Len(t, single.History, 1)

	assert.Equal(t, 0.0, progress["from_zero"].ChangePercent)
	assert.Equal(t, -34.0, progress["drop"].ChangePercent)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 66.7, round1(200.0/3.0))
	assert.Equal(t, 12.3, round1(12.34))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 0.2, round1(0.25))
	assert.Equal(t, 0.8, round1(0.75))
	assert.Equal(t, 12.5, round1(12.5))
	assert.Equal(t, -0.2, round1(-0.25))
}
