package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/internal/config"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// RosterRow is one signup on a session's roster
type RosterRow struct {
	Signup   model.Signup
	UserName string
}

// RosterResult groups a session's roster by pool plus the waitlist
type RosterResult struct {
	Session   *model.Session
	EventName string
	Students  []RosterRow
	Parents   []RosterRow
	Waitlist  []RosterRow
	Cancelled []RosterRow
}

// AttendanceStore defines the database operations needed for attendance admin
type AttendanceStore interface {
	GetSessionByID(ctx context.Context, id string) (*model.Session, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetSignupsBySession(ctx context.Context, sessionID string) ([]model.Signup, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetSignupByID(ctx context.Context, id string) (*model.Signup, error)
	UpdateSignup(signup *model.Signup) error
	InsertNotification(notification *model.Notification) error
}

// Roster returns a session's signups grouped for the admin screen.
func Roster(ctx context.Context, database AttendanceStore, logger *zap.Logger, sessionID string) (*RosterResult, error) {
	session, err := database.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	event, err := database.GetEventByID(ctx, session.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event for session: %w", err)
	}
	signups, err := database.GetSignupsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	result := &RosterResult{Session: session, EventName: event.Name}
	for _, su := range signups {
		row := RosterRow{Signup: su}
		if user, err := database.GetUserByID(ctx, su.UserID); err == nil {
			row.UserName = user.Name
		}

		switch {
		case su.Status == model.SignupWaitlist:
			result.Waitlist = append(result.Waitlist, row)
		case su.Status == model.SignupCancelled:
			result.Cancelled = append(result.Cancelled, row)
		case su.Category == model.CategoryParent:
			result.Parents = append(result.Parents, row)
		default:
			result.Students = append(result.Students, row)
		}
	}

	logger.Debug("Roster built",
		zap.String("session_id", sessionID),
		zap.Int("students", len(result.Students)),
		zap.Int("parents", len(result.Parents)),
		zap.Int("waitlist", len(result.Waitlist)))
	return result, nil
}

// RecordAttendance sets a signup's attendance mark. The admin screen edits
// records directly; nothing checks that the session has happened yet.
func RecordAttendance(ctx context.Context, database AttendanceStore, logger *zap.Logger, signupID string, attendance model.Attendance) (*model.Signup, error) {
	if !attendance.IsValid() {
		return nil, fmt.Errorf("invalid attendance value %q", attendance)
	}

	signup, err := database.GetSignupByID(ctx, signupID)
	if err != nil {
		return nil, err
	}

	signup.Attendance = attendance
	if err := database.UpdateSignup(signup); err != nil {
		return nil, fmt.Errorf("failed to update signup: %w", err)
	}

	logger.Info("Attendance recorded",
		zap.String("signup_id", signupID),
		zap.String("attendance", string(attendance)))
	return signup, nil
}

// AwardHours sets the hours earned on a signup and notifies the user.
func AwardHours(ctx context.Context, database AttendanceStore, cfg *config.Config, logger *zap.Logger, signupID string, hours float64) (*model.Signup, error) {
	if hours < 0 {
		return nil, fmt.Errorf("hours must not be negative, got %v", hours)
	}

	signup, err := database.GetSignupByID(ctx, signupID)
	if err != nil {
		return nil, err
	}

	signup.HoursEarned = &hours
	if err := database.UpdateSignup(signup); err != nil {
		return nil, fmt.Errorf("failed to update signup: %w", err)
	}

	if err := notify(database, cfg, signup.UserID, fmt.Sprintf("You were awarded %.1f volunteer hours", hours)); err != nil {
		return nil, err
	}

	logger.Info("Hours awarded",
		zap.String("signup_id", signupID),
		zap.Float64("hours", hours))
	return signup, nil
}

// RemoveSignup is the admin-side cancellation of someone else's signup.
// Same terminal state as a user cancellation; the record is kept.
func RemoveSignup(ctx context.Context, database AttendanceStore, cfg *config.Config, logger *zap.Logger, signupID, reason string) (*model.Signup, error) {
	signup, err := database.GetSignupByID(ctx, signupID)
	if err != nil {
		return nil, err
	}
	if !signup.Active() {
		return nil, ErrNotSignedUp
	}

	if reason == "" {
		reason = "removed by an organizer"
	}
	if err := markCancelled(database, signup, reason); err != nil {
		return nil, err
	}

	if err := notify(database, cfg, signup.UserID, "An organizer removed your signup: "+reason); err != nil {
		return nil, err
	}

	logger.Info("Signup removed by admin", zap.String("signup_id", signupID))
	return signup, nil
}
