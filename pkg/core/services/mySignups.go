package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/core/stats"
)

// SignupDetail is one row of a user's signup history
type SignupDetail struct {
	Signup    model.Signup
	Session   model.Session
	EventName string
}

// HoursSummary is a user's aggregate figures with the rows behind them
type HoursSummary struct {
	TotalHours      float64
	CompletedEvents int
	Signups         []SignupDetail
}

// MySignupsStore defines the database operations needed for signup history
type MySignupsStore interface {
	GetSignupsByUser(ctx context.Context, userID string) ([]model.Signup, error)
	GetSessionByID(ctx context.Context, id string) (*model.Session, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
}

// MySignups returns the user's complete signup history, cancelled records
// included, newest session first.
func MySignups(ctx context.Context, database MySignupsStore, logger *zap.Logger, userID string) ([]SignupDetail, error) {
	logger.Debug("Fetching signup history", zap.String("user_id", userID))

	signups, err := database.GetSignupsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	details := make([]SignupDetail, 0, len(signups))
	for _, su := range signups {
		detail := SignupDetail{Signup: su}

		// Sessions can disappear when an admin deletes an event; the
		// signup row survives with an empty session.
		if session, err := database.GetSessionByID(ctx, su.SessionID); err == nil {
			detail.Session = *session
			if event, err := database.GetEventByID(ctx, session.EventID); err == nil {
				detail.EventName = event.Name
			}
		}
		details = append(details, detail)
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Session.Start.After(details[j].Session.Start)
	})

	logger.Debug("Signup history fetched", zap.Int("count", len(details)))
	return details, nil
}

// MyHours folds the user's signup list into their running totals.
func MyHours(ctx context.Context, database MySignupsStore, logger *zap.Logger, userID string) (*HoursSummary, error) {
	details, err := MySignups(ctx, database, logger, userID)
	if err != nil {
		return nil, err
	}

	signups := make([]model.Signup, 0, len(details))
	for _, d := range details {
		signups = append(signups, d.Signup)
	}

	return &HoursSummary{
		TotalHours:      stats.TotalHours(signups),
		CompletedEvents: stats.CompletedEvents(signups),
		Signups:         details,
	}, nil
}
