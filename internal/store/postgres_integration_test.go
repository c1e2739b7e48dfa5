//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fitcoach-backend-go/internal/db"
	"fitcoach-backend-go/internal/migrations"
	"fitcoach-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresStore(t *testing.T) *Store {
	t.Helper()
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	pool.MaxWait = 60 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=fitcoach",
			"POSTGRES_PASSWORD=fitcoach",
			"POSTGRES_DB=fitcoach",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("postgres://fitcoach:fitcoach@%s/fitcoach?sslmode=disable", resource.GetHostPort("5432/tcp"))
	var conn *sqlx.DB
	require.NoError(t, pool.Retry(func() error {
		var openErr error
		conn, openErr = db.Open("pgx", dsn)
		return openErr
	}))
	t.Cleanup(func() { _ = conn.Close() })

	_, err = migrations.Apply(conn)
	require.NoError(t, err)
	return New(conn)
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgresStore(t)
	ctx := context.Background()

	coach := models.User{ID: uuid.NewString(), Email: "coach@example.com", PasswordHash: "x", Name: "Coach", Role: models.RoleTrainer}
	require.NoError(t, s.Users.Create(ctx, &coach))
	dup := coach
	dup.ID = uuid.NewString()
	require.ErrorIs(t, s.Users.Create(ctx, &dup), ErrDuplicate)

	w := models.Workout{
		ID: uuid.NewString(), TrainerID: coach.ID, AthleteID: "a1", Date: "2026-02-24", Title: "Legs",
		Exercises: models.ExerciseList{{Name: "Squat"}, {Name: "Lunge"}},
	}
	require.NoError(t, s.Workouts.Create(ctx, &w))

	got, err := s.Workouts.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunge", got.Exercises[1].Name)
	assert.Nil(t, got.CompletionData)

	ran, err := migrations.Apply(s.DB)
	require.NoError(t, err)
	assert.Empty(t, ran)
}
