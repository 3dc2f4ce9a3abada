package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

var validate = validator.New()

// CreateEventRequest is the admin form for a new event
type CreateEventRequest struct {
	Name        string `validate:"required"`
	Description string
	Location    string
}

// EventAdminStore defines the database operations needed for event admin
type EventAdminStore interface {
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	InsertEvent(event *model.Event) error
	UpdateEvent(event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetSessionsByEvent(ctx context.Context, eventID string) ([]model.Session, error)
	GetSignupsBySession(ctx context.Context, sessionID string) ([]model.Signup, error)
}

// CreateEvent creates a new event in draft status. Drafts are invisible to
// non-admins until published.
func CreateEvent(ctx context.Context, database EventAdminStore, logger *zap.Logger, req CreateEventRequest) (*model.Event, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	event := &model.Event{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      model.EventDraft,
	}

	if err := database.InsertEvent(event); err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	logger.Info("Event created", zap.String("event_id", event.ID), zap.String("name", event.Name))
	return event, nil
}

// PublishEvent moves a draft event to published.
func PublishEvent(ctx context.Context, database EventAdminStore, logger *zap.Logger, eventID string) (*model.Event, error) {
	return changeEventStatus(ctx, database, logger, eventID, model.EventDraft, model.EventPublished)
}

// ArchiveEvent moves a published event to archived, hiding it from
// non-admin browsing. Existing signup records are untouched.
func ArchiveEvent(ctx context.Context, database EventAdminStore, logger *zap.Logger, eventID string) (*model.Event, error) {
	return changeEventStatus(ctx, database, logger, eventID, model.EventPublished, model.EventArchived)
}

func changeEventStatus(ctx context.Context, database EventAdminStore, logger *zap.Logger, eventID string, from, to model.EventStatus) (*model.Event, error) {
	event, err := database.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != from {
		return nil, fmt.Errorf("event is %s: %w", event.Status, ErrBadStatusChange)
	}

	event.Status = to
	if err := database.UpdateEvent(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	logger.Info("Event status changed",
		zap.String("event_id", eventID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return event, nil
}

// DeleteEvent removes an event and its sessions. Events whose sessions
// carry any signup history are protected; archive those instead.
func DeleteEvent(ctx context.Context, database EventAdminStore, logger *zap.Logger, eventID string) error {
	if _, err := database.GetEventByID(ctx, eventID); err != nil {
		return err
	}

	sessions, err := database.GetSessionsByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}
	for _, session := range sessions {
		signups, err := database.GetSignupsBySession(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch signups: %w", err)
		}
		if len(signups) > 0 {
			return ErrEventHasSignups
		}
	}

	if err := database.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	logger.Info("Event deleted", zap.String("event_id", eventID), zap.Int("sessions_removed", len(sessions)))
	return nil
}
