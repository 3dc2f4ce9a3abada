package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/core/eligibility"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// SignUpResult describes the outcome of a signup attempt
type SignUpResult struct {
	Signup     *model.Signup
	Session    *model.Session
	Event      *model.Event
	Waitlisted bool
}

// SignUpStore defines the database operations needed for signing up
type SignUpStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetSessionByID(ctx context.Context, id string) (*model.Session, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetSignups(ctx context.Context) ([]model.Signup, error)
	InsertSignup(signup *model.Signup) error
	InsertNotification(notification *model.Notification) error
}

// SignUp signs a user up for a session. The signup is confirmed when the
// user's capacity pool has an open spot and waitlisted otherwise; either
// way a new record is created, including after a prior cancellation.
func SignUp(ctx context.Context, database SignUpStore, cfg *config.Config, logger *zap.Logger, userID, sessionID string) (*SignUpResult, error) {
	logger.Info("Signup requested", zap.String("user_id", userID), zap.String("session_id", sessionID))

	user, err := database.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Admins have no capacity pool and never enter the signup machine
	category, ok := eligibility.CategoryForRole(user.Role)
	if !ok {
		return nil, ErrRoleCannotSignUp
	}

	session, err := database.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	event, err := database.GetEventByID(ctx, session.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event for session: %w", err)
	}
	if event.Status != model.EventPublished {
		return nil, ErrEventNotOpen
	}
	if session.IsPast(time.Now()) {
		return nil, ErrSessionInPast
	}

	signups, err := database.GetSignups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	switch eligibility.StateFor(userID, sessionID, signups) {
	case eligibility.StateConfirmed, eligibility.StateWaitlist:
		return nil, ErrAlreadySignedUp
	}

	status := model.SignupWaitlist
	if eligibility.HasOpenSpot(*session, signups, category) {
		status = model.SignupConfirmed
	}

	signup := &model.Signup{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		UserID:     userID,
		Category:   category,
		Status:     status,
		Attendance: model.AttendanceNotMarked,
		CreatedAt:  time.Now(),
	}

	if err := database.InsertSignup(signup); err != nil {
		return nil, fmt.Errorf("failed to insert signup: %w", err)
	}

	message := fmt.Sprintf("You're confirmed for %s on %s", event.Name, session.Start.Format("2 Jan 2006"))
	if status == model.SignupWaitlist {
		message = fmt.Sprintf("%s on %s is full; you're on the waitlist", event.Name, session.Start.Format("2 Jan 2006"))
	}
	if err := notify(database, cfg, userID, message); err != nil {
		return nil, err
	}

	logger.Info("Signup recorded",
		zap.String("signup_id", signup.ID),
		zap.String("status", string(status)),
		zap.String("category", string(category)))

	return &SignUpResult{
		Signup:     signup,
		Session:    session,
		Event:      event,
		Waitlisted: status == model.SignupWaitlist,
	}, nil
}
