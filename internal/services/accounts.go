package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitcoach-backend-go/internal/models"
	"fitcoach-backend-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService struct {
	*deps
	prefs *SettingsService
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Session is a freshly issued token and the account it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// Profile is a user together with their effective settings.
type Profile struct {
	User     models.User
	Settings models.Settings
}

// Register creates a trainer account and signs it in. Self sign-up never
// creates athletes; trainers add those to their roster.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	hash, err := s.tokens.HashPassword(in.Password)
	if err != nil {
		return Session{}, WrapError(err, "hash password")
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         models.RoleTrainer,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return Session{}, ErrConflict("Email already registered")
		}
		return Session{}, WrapError(err, "register")
	}
	s.log.Info("account registered", zap.String("user_id", user.ID))
	return s.issue(user)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.events.Login(false)
		return Session{}, ErrUnauthorized("Invalid credentials")
	}
	if err != nil {
		return Session{}, WrapError(err, "login")
	}
	if !s.tokens.VerifyPassword(password, user.PasswordHash) {
		s.events.Login(false)
		return Session{}, ErrUnauthorized("Invalid credentials")
	}
	s.events.Login(true)
	return s.issue(user)
}

func (s *AccountService) issue(user models.User) (Session, error) {
	token, exp, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return Session{}, WrapError(err, "issue token")
	}
	return Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// Authenticate validates a bearer token and confirms its user still exists.
func (s *AccountService) Authenticate(ctx context.Context, token string) (Identity, error) {
	if strings.TrimSpace(token) == "" {
		return Identity{}, ErrUnauthorized("Not authenticated")
	}
	id, err := s.tokens.Validate(token)
	if errors.Is(err, ErrTokenExpired) {
		return Identity{}, ErrUnauthorized("Token expired")
	}
	if err != nil {
		return Identity{}, ErrUnauthorized("Invalid token")
	}
	user, err := s.users.GetByID(ctx, id.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return Identity{}, ErrUnauthorized("User not found")
	}
	if err != nil {
		return Identity{}, WrapError(err, "authenticate")
	}
	return Identity{UserID: user.ID, Role: user.Role}, nil
}

// Me returns the caller and their settings. Missing settings are reported
// with defaults but not stored.
func (s *AccountService) Me(ctx context.Context, caller Identity) (Profile, error) {
	user, err := s.loadUser(ctx, caller.UserID)
	if err != nil {
		return Profile{}, err
	}
	settings, err := s.prefs.peek(ctx, caller.UserID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Settings: settings}, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, caller Identity, patch models.ProfilePatch) (models.User, error) {
	if patch.IsEmpty() {
		return models.User{}, ErrBadRequest("No data to update")
	}
	user, err := s.loadUser(ctx, caller.UserID)
	if err != nil {
		return models.User{}, err
	}
	patch.Apply(&user)
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return models.User{}, WrapError(err, "update profile")
	}
	return user, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, caller Identity, current, next string) error {
	user, err := s.loadUser(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if !s.tokens.VerifyPassword(current, user.PasswordHash) {
		return ErrBadRequest("Current password is incorrect")
	}
	hash, err := s.tokens.HashPassword(next)
	if err != nil {
		return WrapError(err, "hash password")
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return WrapError(err, "change password")
	}
	return nil
}

func (s *AccountService) loadUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrNotFound("User not found")
	}
	if err != nil {
		return models.User{}, WrapError(err, "load user")
	}
	return user, nil
}
