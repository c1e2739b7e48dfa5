package store

import (
	"context"
	"testing"
	"time"

	"fitcoach-backend-go/internal/db"
	"fitcoach-backend-go/internal/migrations"
	"fitcoach-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_, err = migrations.Apply(conn)
	require.NoError(t, err)
	return New(conn)
}

func newTrainer(t *testing.T, s *Store, email string) models.User {
	t.Helper()
	u := models.User{ID: uuid.NewString(), Email: email, PasswordHash: "x", Name: "Coach", Role: models.RoleTrainer}
	require.NoError(t, s.Users.Create(context.Background(), &u))
	return u
}

func newAthlete(t *testing.T, s *Store, trainerID, email string) models.User {
	t.Helper()
	u := models.User{ID: uuid.NewString(), Email: email, PasswordHash: "x", Name: "Runner", Role: models.RoleAthlete, TrainerID: &trainerID}
	require.NoError(t, s.Users.Create(context.Background(), &u))
	return u
}

func TestUserEmailUniqueCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	newTrainer(t, s, "Coach@Example.com")

	dup := models.User{ID: uuid.NewString(), Email: " coach@example.COM ", PasswordHash: "x", Name: "Other", Role: models.RoleTrainer}
	err := s.Users.Create(ctx, &dup)
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := s.Users.GetByEmail(ctx, "COACH@example.com")
	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", got.Email)
	assert.Nil(t, got.TrainerID)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Users.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAthletesAndScopedDelete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	coach := newTrainer(t, s, "a@x.com")
	other := newTrainer(t, s, "b@x.com")
	mine := newAthlete(t, s, coach.ID, "m@x.com")
	newAthlete(t, s, other.ID, "o@x.com")

	roster, err := s.Users.ListAthletes(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, mine.ID, roster[0].ID)
	require.NotNil(t, roster[0].TrainerID)
	assert.Equal(t, coach.ID, *roster[0].TrainerID)

	require.ErrorIs(t, s.Users.DeleteAthlete(ctx, mine.ID, other.ID), ErrNotFound)
	require.NoError(t, s.Users.DeleteAthlete(ctx, mine.ID, coach.ID))
	_, err = s.Users.GetByID(ctx, mine.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileAndPasswordUpdates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	coach := newTrainer(t, s, "a@x.com")

	coach.Sport = "rowing"
	coach.Position = "head coach"
	require.NoError(t, s.Users.UpdateProfile(ctx, coach))
	require.NoError(t, s.Users.UpdatePassword(ctx, coach.ID, "new-hash"))

	got, err := s.Users.GetByID(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, "rowing", got.Sport)
	assert.Equal(t, "head coach", got.Position)
	assert.Equal(t, "new-hash", got.PasswordHash)

	require.ErrorIs(t, s.Users.UpdatePassword(ctx, "missing", "h"), ErrNotFound)
}

func TestSettingsLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Settings.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	row := models.DefaultSettings("u1")
	require.NoError(t, s.Settings.Insert(ctx, row))
	require.ErrorIs(t, s.Settings.Insert(ctx, row), ErrDuplicate)

	row.Language = "en"
	row.NotificationsTests = false
	require.NoError(t, s.Settings.Update(ctx, row))

	got, err := s.Settings.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
	assert.False(t, got.NotificationsTests)
	assert.True(t, got.NotificationsWorkouts)

	require.NoError(t, s.Settings.Delete(ctx, "u1"))
	_, err = s.Settings.Get(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutRoundTripAndOrdering(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mk := func(athlete, date string, offset time.Duration) models.Workout {
		w := models.Workout{
			ID: uuid.NewString(), TrainerID: "t1", AthleteID: athlete, Date: date, Title: "W " + date,
			Exercises: models.ExerciseList{{Name: "Squat", Sets: "4"}, {Name: "Bench", VideoURL: "http://v"}},
			CreatedAt: base.Add(offset),
		}
		require.NoError(t, s.Workouts.Create(ctx, &w))
		return w
	}
	older := mk("a1", "2026-02-20", 0)
	newer := mk("a1", "2026-02-24", time.Minute)
	sameDayLater := mk("a2", "2026-02-24", 2*time.Minute)

	all, err := s.Workouts.List(ctx, WorkoutFilter{TrainerID: "t1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{sameDayLater.ID, newer.ID, older.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := s.Workouts.List(ctx, WorkoutFilter{AthleteID: "a1", Date: "2026-02-20"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, older.ID, mine[0].ID)
	assert.Equal(t, "Squat", mine[0].Exercises[0].Name)
	assert.Equal(t, "http://v", mine[0].Exercises[1].VideoURL)
	assert.Nil(t, mine[0].CompletionData)
	assert.Nil(t, mine[0].Observations)

	got, err := s.Workouts.Get(ctx, newer.ID)
	require.NoError(t, err)
	got.Completed = true
	got.CompletionData = &models.CompletionData{ExerciseResults: []models.ExerciseResult{{ExerciseIndex: 0, Name: "Squat", TotalSets: 4, CompletedSets: 4}}}
	require.NoError(t, s.Workouts.Update(ctx, got))

	got, err = s.Workouts.Get(ctx, newer.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletionData)
	assert.Equal(t, 4, got.CompletionData.ExerciseResults[0].CompletedSets)

	require.ErrorIs(t, s.Workouts.Delete(ctx, newer.ID, "t2"), ErrNotFound)
	require.NoError(t, s.Workouts.Delete(ctx, newer.ID, "t1"))

	n, err := s.Workouts.DeleteByAthlete(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTestListAndHistory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	mk := func(name, date string, value float64) models.PhysicalTest {
		pt := models.PhysicalTest{
			ID: uuid.NewString(), AthleteID: "a1", CreatedBy: "t1", TestType: "strength",
			TestName: name, Value: value, Unit: "kg", Date: date,
		}
		require.NoError(t, s.Tests.Create(ctx, &pt))
		return pt
	}
	mk("squat_rm", "2026-02-10", 120)
	mk("squat_rm", "2026-01-10", 100)
	jump := mk("cmj", "2026-01-15", 40)

	listed, err := s.Tests.List(ctx, TestFilter{AthleteID: "a1"})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "2026-02-10", listed[0].Date)
	assert.Equal(t, "2026-01-10", listed[2].Date)

	history, err := s.Tests.History(ctx, "a1", "squat_rm")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 100.0, history[0].Value)
	assert.Equal(t, 120.0, history[1].Value)

	left, right := 20.5, 19.0
	jump.ValueLeft, jump.ValueRight = &left, &right
	require.NoError(t, s.Tests.Update(ctx, jump))
	got, err := s.Tests.Get(ctx, jump.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ValueLeft)
	assert.Equal(t, 20.5, *got.ValueLeft)

	require.NoError(t, s.Tests.Delete(ctx, jump.ID))
	require.ErrorIs(t, s.Tests.Delete(ctx, jump.ID), ErrNotFound)

	byName, err := s.Tests.List(ctx, TestFilter{TestType: "strength", TestName: "cmj"})
	require.NoError(t, err)
	assert.Empty(t, byName)
}

func TestTestListByRoster(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	for _, athleteID := range []string{"a1", "a2", "a3"} {
		pt := models.PhysicalTest{
			ID: uuid.NewString(), AthleteID: athleteID, CreatedBy: "t1", TestType: "speed",
			TestName: "sprint_30m", Value: 4.2, Unit: "s", Date: "2026-03-01",
		}
		require.NoError(t, s.Tests.Create(ctx, &pt))
	}

	listed, err := s.Tests.List(ctx, TestFilter{AthleteIDs: []string{"a1", "a3"}})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, pt := range listed {
		assert.NotEqual(t, "a2", pt.AthleteID)
	}

	listed, err = s.Tests.List(ctx, TestFilter{AthleteIDs: []string{"a1", "a3"}, AthleteID: "a3", TestName: "sprint_30m"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "a3", listed[0].AthleteID)
}

func TestMediaAssets(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	asset := models.MediaAsset{ID: uuid.NewString(), OwnerUserID: "u1", StoragePath: "uploads/u1/a.png", ContentType: "image/png", SizeBytes: 10, Sha256: "abc"}
	require.NoError(t, s.Media.Create(ctx, &asset))
	dup := asset
	dup.ID = uuid.NewString()
	require.ErrorIs(t, s.Media.Create(ctx, &dup), ErrDuplicate)

	got, err := s.Media.GetByPath(ctx, "uploads/u1/a.png")
	require.NoError(t, err)
	assert.Equal(t, asset.ID, got.ID)

	require.NoError(t, s.Media.Delete(ctx, asset.ID))
	_, err = s.Media.GetByPath(ctx, "uploads/u1/a.png")
	require.ErrorIs(t, err, ErrNotFound)
}
