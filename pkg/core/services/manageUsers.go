package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

// CreateUserRequest is the admin form for a new portal member. Role is set
// once here and never changes afterwards.
type CreateUserRequest struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Role    string `validate:"required,oneof=student parent admin"`
	Chapter string
}

// UserAdminStore defines the database operations needed for user admin
type UserAdminStore interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertUser(user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// CreateUser creates a new user with a unique email.
func CreateUser(ctx context.Context, database UserAdminStore, logger *zap.Logger, req CreateUserRequest) (*model.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	if _, err := database.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	user := &model.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.Role(req.Role),
		Chapter:  req.Chapter,
		JoinedAt: time.Now(),
	}

	if err := database.InsertUser(user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// ListUsers returns every portal member.
func ListUsers(ctx context.Context, database UserAdminStore, logger *zap.Logger) ([]model.User, error) {
	users, err := database.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	logger.Debug("Users fetched", zap.Int("count", len(users)))
	return users, nil
}

// DeleteUser removes a user record. Their signup history is kept so past
// rosters and aggregate figures stay intact.
func DeleteUser(ctx context.Context, database UserAdminStore, logger *zap.Logger, userID string) error {
	if _, err := database.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := database.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	logger.Info("User deleted", zap.String("user_id", userID))
	return nil
}
