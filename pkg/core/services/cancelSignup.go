package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/core/eligibility"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// CancelResult describes a cancellation or waitlist drop
type CancelResult struct {
	Signup *model.Signup
	// FreedCategory is set when a confirmed signup was cancelled: that
	// pool now has one more open spot for the next signup attempt. No
	// waitlisted signup is promoted; promotion is a product decision the
	// portal has not taken.
	FreedCategory model.Category
}

// CancelStore defines the database operations needed for cancellations
type CancelStore interface {
	GetSessionByID(ctx context.Context, id string) (*model.Session, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetSignups(ctx context.Context) ([]model.Signup, error)
	UpdateSignup(signup *model.Signup) error
	InsertNotification(notification *model.Notification) error
}

// CancelSignup cancels a user's confirmed signup. A reason is required.
// The record is marked cancelled and kept; no other user's signup changes.
func CancelSignup(ctx context.Context, database CancelStore, cfg *config.Config, logger *zap.Logger, userID, sessionID, reason string) (*CancelResult, error) {
	logger.Info("Cancellation requested", zap.String("user_id", userID), zap.String("session_id", sessionID))

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	active, session, err := activeSignupForSession(ctx, database, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if active.Status != model.SignupConfirmed {
		return nil, ErrNotConfirmed
	}

	if err := markCancelled(database, active, reason); err != nil {
		return nil, err
	}

	event, err := database.GetEventByID(ctx, session.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event for session: %w", err)
	}
	message := fmt.Sprintf("Your signup for %s on %s was cancelled", event.Name, session.Start.Format("2 Jan 2006"))
	if err := notify(database, cfg, userID, message); err != nil {
		return nil, err
	}

	logger.Info("Signup cancelled",
		zap.String("signup_id", active.ID),
		zap.String("freed_category", string(active.Category)))

	return &CancelResult{Signup: active, FreedCategory: active.Category}, nil
}

// DropWaitlist removes a user from a session's waitlist. No reason is
// needed; the record is marked cancelled and kept.
func DropWaitlist(ctx context.Context, database CancelStore, cfg *config.Config, logger *zap.Logger, userID, sessionID string) (*CancelResult, error) {
	logger.Info("Waitlist drop requested", zap.String("user_id", userID), zap.String("session_id", sessionID))

	active, session, err := activeSignupForSession(ctx, database, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if active.Status != model.SignupWaitlist {
		return nil, ErrNotWaitlisted
	}

	if err := markCancelled(database, active, ""); err != nil {
		return nil, err
	}

	event, err := database.GetEventByID(ctx, session.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event for session: %w", err)
	}
	message := fmt.Sprintf("You left the waitlist for %s on %s", event.Name, session.Start.Format("2 Jan 2006"))
	if err := notify(database, cfg, userID, message); err != nil {
		return nil, err
	}

	logger.Info("Waitlist signup dropped", zap.String("signup_id", active.ID))

	return &CancelResult{Signup: active}, nil
}

// activeSignupForSession resolves the session and the caller's active
// signup for it. Transitions out of an active state require the session to
// be non-past.
func activeSignupForSession(ctx context.Context, database CancelStore, userID, sessionID string) (*model.Signup, *model.Session, error) {
	session, err := database.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsPast(time.Now()) {
		return nil, nil, ErrSessionInPast
	}

	signups, err := database.GetSignups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	active := eligibility.ActiveSignup(userID, sessionID, signups)
	if active == nil {
		return nil, nil, ErrNotSignedUp
	}
	return active, session, nil
}

// signupWriter is the slice of the store that cancellation needs.
type signupWriter interface {
	UpdateSignup(signup *model.Signup) error
}

func markCancelled(database signupWriter, signup *model.Signup, reason string) error {
	now := time.Now()
	signup.Status = model.SignupCancelled
	signup.CancelReason = reason
	signup.CancelledAt = &now

	if err := database.UpdateSignup(signup); err != nil {
		return fmt.Errorf("failed to update signup: %w", err)
	}
	return nil
}
