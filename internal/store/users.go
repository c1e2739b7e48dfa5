package store

import (
	"context"
	"fmt"
	"strings"

	"fitcoach-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, name, role, trainer_id, sport, position, created_at`

type UserStore struct {
	db *sqlx.DB
}

// Create inserts a user. Emails are stored lower-cased; a taken email yields
// ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	stamp(&u.CreatedAt)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.TrainerID, u.Sport, u.Position, u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user -> %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	return u, notFound(err)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`),
		strings.ToLower(strings.TrimSpace(email)))
	return u, notFound(err)
}

// ListAthletes returns trainerID's roster, oldest first.
func (s *UserStore) ListAthletes(ctx context.Context, trainerID string) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, s.db.Rebind(`
SELECT `+userColumns+` FROM users
WHERE role = ? AND trainer_id = ?
ORDER BY created_at ASC, name ASC`), models.RoleAthlete, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list athletes -> %w", err)
	}
	return users, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, u models.User) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
UPDATE users SET name = ?, sport = ?, position = ? WHERE id = ?`),
		u.Name, u.Sport, u.Position, u.ID)
	if err != nil {
		return fmt.Errorf("update profile -> %w", err)
	}
	return affectedOne(res)
}

func (s *UserStore) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`), hash, id)
	if err != nil {
		return fmt.Errorf("update password -> %w", err)
	}
	return affectedOne(res)
}

// DeleteAthlete removes an athlete only when it is on trainerID's roster.
func (s *UserStore) DeleteAthlete(ctx context.Context, id, trainerID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
DELETE FROM users WHERE id = ? AND trainer_id = ? AND role = ?`),
		id, trainerID, models.RoleAthlete)
	if err != nil {
		return fmt.Errorf("delete athlete -> %w", err)
	}
	return affectedOne(res)
}
