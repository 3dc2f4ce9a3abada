package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/eligibility"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

// SessionView is one session row with live capacity figures and the
// viewer's own state for it.
type SessionView struct {
	Session          model.Session
	StudentConfirmed int
	ParentConfirmed  int
	StudentSpotsLeft int
	ParentSpotsLeft  int
	WaitlistLength   int
	ViewerState      eligibility.State
}

// EventView is an event plus its session rows, ordered by start time.
type EventView struct {
	Event    model.Event
	Sessions []SessionView
}

// BrowseStore defines the database operations needed for event browsing
type BrowseStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetSessionsByEvent(ctx context.Context, eventID string) ([]model.Session, error)
	GetSignups(ctx context.Context) ([]model.Signup, error)
}

// BrowseEvents lists the events the viewer may see. Non-admins only see
// published events; admins see everything including drafts and archives.
func BrowseEvents(ctx context.Context, database BrowseStore, logger *zap.Logger, viewer *model.User) ([]model.Event, error) {
	logger.Debug("Browsing events", zap.String("viewer_id", viewer.ID), zap.String("role", string(viewer.Role)))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	if viewer.Role == model.RoleAdmin {
		return events, nil
	}

	visible := make([]model.Event, 0, len(events))
	for _, event := range events {
		if event.Status == model.EventPublished {
			visible = append(visible, event)
		}
	}

	logger.Debug("Events visible to viewer", zap.Int("count", len(visible)))
	return visible, nil
}

// ViewEvent returns one event with per-session capacity figures and the
// viewer's own signup state. Events the viewer may not see behave exactly
// like unknown ids.
func ViewEvent(ctx context.Context, database BrowseStore, logger *zap.Logger, viewer *model.User, eventID string) (*EventView, error) {
	logger.Debug("Viewing event", zap.String("event_id", eventID), zap.String("viewer_id", viewer.ID))

	event, err := database.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if viewer.Role != model.RoleAdmin && event.Status != model.EventPublished {
		return nil, fmt.Errorf("event %s: %w", eventID, db.ErrNotFound)
	}

	sessions, err := database.GetSessionsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	signups, err := database.GetSignups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Before(sessions[j].Start)
	})

	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, buildSessionView(session, signups, viewer.ID))
	}

	return &EventView{Event: *event, Sessions: views}, nil
}

func buildSessionView(session model.Session, signups []model.Signup, viewerID string) SessionView {
	studentConfirmed := eligibility.ConfirmedCount(signups, session.ID, model.CategoryStudent)
	parentConfirmed := eligibility.ConfirmedCount(signups, session.ID, model.CategoryParent)

	waitlist := 0
	for _, su := range signups {
		if su.SessionID == session.ID && su.Status == model.SignupWaitlist {
			waitlist++
		}
	}

	return SessionView{
		Session:          session,
		StudentConfirmed: studentConfirmed,
		ParentConfirmed:  parentConfirmed,
		StudentSpotsLeft: session.StudentCapacity - studentConfirmed,
		ParentSpotsLeft:  session.ParentCapacity - parentConfirmed,
		WaitlistLength:   waitlist,
		ViewerState:      eligibility.StateFor(viewerID, session.ID, signups),
	}
}
