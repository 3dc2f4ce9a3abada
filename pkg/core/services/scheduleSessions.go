package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

// ScheduleSessionsRequest describes a run of session occurrences generated
// from a recurrence rule, e.g. "DTSTART:20260404T090000Z\nRRULE:FREQ=WEEKLY;COUNT=6".
type ScheduleSessionsRequest struct {
	EventID         string `validate:"required"`
	RRule           string `validate:"required"`
	DurationMinutes int    `validate:"required,min=1"`
	StudentCapacity int    `validate:"min=0"`
	ParentCapacity  int    `validate:"min=0"`
	Location        string
}

// ScheduleSessionsResult contains the sessions that were created
type ScheduleSessionsResult struct {
	Event    *model.Event
	Sessions []model.Session
}

// ScheduleStore defines the database operations needed for scheduling
type ScheduleStore interface {
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	InsertSession(session *model.Session) error
}

// ScheduleSessions expands a recurrence rule into session occurrences for
// an event, each with the same duration and capacity pools. The rule must
// be bounded by COUNT or UNTIL.
func ScheduleSessions(ctx context.Context, database ScheduleStore, logger *zap.Logger, req ScheduleSessionsRequest) (*ScheduleSessionsResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid schedule request: %w", err)
	}

	event, err := database.GetEventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	logger.Info("Scheduling sessions",
		zap.String("event_id", req.EventID),
		zap.String("rrule", req.RRule))

	occurrences, err := db.ExpandSchedule(req.RRule)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("rrule produced no occurrences")
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	sessions := make([]model.Session, 0, len(occurrences))
	for _, start := range occurrences {
		session := model.Session{
			ID:              uuid.New().String(),
			EventID:         event.ID,
			Start:           start,
			End:             start.Add(duration),
			Location:        req.Location,
			StudentCapacity: req.StudentCapacity,
			ParentCapacity:  req.ParentCapacity,
		}
		if err := database.InsertSession(&session); err != nil {
			return nil, fmt.Errorf("failed to insert session: %w", err)
		}
		sessions = append(sessions, session)
	}

	logger.Info("Sessions scheduled",
		zap.String("event_id", event.ID),
		zap.Int("count", len(sessions)),
		zap.String("first", sessions[0].Start.Format("2006-01-02")),
		zap.String("last", sessions[len(sessions)-1].Start.Format("2006-01-02")))

	return &ScheduleSessionsResult{Event: event, Sessions: sessions}, nil
}
