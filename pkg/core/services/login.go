package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/auth"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

// LoginResult contains the session token issued to a signed-in user
type LoginResult struct {
	Token     string
	User      *model.User
	ExpiresAt time.Time
}

// LoginStore defines the database operations needed for login
type LoginStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Login performs the portal's mocked authentication: the email must belong
// to a seeded user and the password must match the shared demo password.
// Unknown emails and wrong passwords both get the same fixed message.
func Login(ctx context.Context, database LoginStore, cfg *config.Config, logger *zap.Logger, email, password string) (*LoginResult, error) {
	logger.Info("Login attempt", zap.String("email", email))

	user, err := database.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			logger.Debug("Login failed, unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if password != cfg.DemoPassword {
		logger.Debug("Login failed, password mismatch", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := auth.CreateToken([]byte(cfg.TokenSigningKey), cfg.SessionTTL(), user)
	if err != nil {
		return nil, err
	}

	logger.Info("Login successful",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		Token:     token,
		User:      user,
		ExpiresAt: time.Now().Add(cfg.SessionTTL()),
	}, nil
}
