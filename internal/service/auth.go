// Package service contains the business logic: it validates, enforces
// uniqueness rules, and orchestrates repositories. Handlers stay HTTP,
// repositories stay SQL.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/auth"
	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// AuthService handles registration, login and profile edits.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates an account. Format constraints are the form's job;
// this method enforces the uniqueness rules and stores the bcrypt hash.
// Email ownership is not verified (known limitation).
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, apperror.ValidationFailed("username", "please use a different username")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperror.ValidationFailed("email", "please use a different email address")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Two registrations can race past the pre-checks; the unique
		// indexes have the final word.
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("username", "please use a different username")
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login verifies credentials. Unknown username and wrong password return
// the same AuthError, so the login page cannot be used to enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.AuthFailed("invalid username or password")
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("failed login attempt", slog.String("username", username))
		return nil, apperror.AuthFailed("invalid username or password")
	}

	return user, nil
}

// EditProfile updates the user's username and about-me text. Renaming to
// a username someone else holds is a validation failure.
func (s *AuthService) EditProfile(ctx context.Context, userID, username, aboutMe string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
			return nil, apperror.ValidationFailed("username", "please use a different username")
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("checking username: %w", err)
		}
	}

	user.Username = username
	user.AboutMe = aboutMe
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("username", "please use a different username")
		}
		s.logger.Error("failed to update profile",
			slog.String("id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("id", user.ID))
	return user, nil
}

// GetUserByUsername fetches a user for the profile page. Missing users
// are apperror.ErrNotFound.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetUserByUsername(ctx, username)
}
