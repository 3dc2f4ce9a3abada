package db

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/redbridgehub/volunteer-portal/pkg/core/eligibility"
	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// SeedSchedule generates an event's sessions from a recurrence rule instead
// of listing each occurrence by hand.
type SeedSchedule struct {
	RRule           string `yaml:"rrule" validate:"required"`
	DurationMinutes int    `yaml:"durationMinutes" validate:"required,min=1"`
	StudentCapacity int    `yaml:"studentCapacity" validate:"min=0"`
	ParentCapacity  int    `yaml:"parentCapacity" validate:"min=0"`
}

// SeedSession is one explicitly listed session occurrence.
type SeedSession struct {
	ID              string    `yaml:"id,omitempty"`
	Start           time.Time `yaml:"start" validate:"required"`
	End             time.Time `yaml:"end,omitempty"`
	Location        string    `yaml:"location,omitempty"`
	StudentCapacity int       `yaml:"studentCapacity" validate:"min=0"`
	ParentCapacity  int       `yaml:"parentCapacity" validate:"min=0"`
}

// SeedEvent is an event plus its sessions, listed and/or scheduled.
type SeedEvent struct {
	ID          string        `yaml:"id,omitempty"`
	Name        string        `yaml:"name" validate:"required"`
	Description string        `yaml:"description,omitempty"`
	Location    string        `yaml:"location,omitempty"`
	Status      string        `yaml:"status" validate:"required,oneof=draft published archived"`
	Sessions    []SeedSession `yaml:"sessions,omitempty" validate:"dive"`
	Schedule    *SeedSchedule `yaml:"schedule,omitempty"`
}

// SeedUser is one portal member.
type SeedUser struct {
	ID       string    `yaml:"id,omitempty"`
	Name     string    `yaml:"name" validate:"required"`
	Email    string    `yaml:"email" validate:"required,email"`
	Role     string    `yaml:"role" validate:"required,oneof=student parent admin"`
	Chapter  string    `yaml:"chapter,omitempty"`
	JoinedAt time.Time `yaml:"joinedAt,omitempty"`
}

// SeedSignup is an existing signup record. Status defaults to confirmed.
type SeedSignup struct {
	SessionID   string   `yaml:"sessionID" validate:"required"`
	UserEmail   string   `yaml:"userEmail" validate:"required,email"`
	Status      string   `yaml:"status,omitempty" validate:"omitempty,oneof=confirmed waitlist cancelled"`
	HoursEarned *float64 `yaml:"hoursEarned,omitempty" validate:"omitempty,min=0"`
	Attendance  string   `yaml:"attendance,omitempty" validate:"omitempty,oneof=present absent not_marked"`
}

// SeedData is the mock dataset the portal boots from.
type SeedData struct {
	Users   []SeedUser   `yaml:"users" validate:"required,dive"`
	Events  []SeedEvent  `yaml:"events,omitempty" validate:"dive"`
	Signups []SeedSignup `yaml:"signups,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadSeed reads, validates, and materialises a seed file into a MemStore.
func LoadSeed(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return BuildStore(&seed)
}

// BuildStore validates seed data and expands it into a populated store.
// Session schedules are expanded through their recurrence rules; signup
// categories are derived from each user's role.
func BuildStore(seed *SeedData) (*MemStore, error) {
	if err := validate.Struct(seed); err != nil {
		return nil, fmt.Errorf("seed validation failed: %w", err)
	}

	store := NewMemStore()

	usersByEmail := make(map[string]model.User)
	for _, su := range seed.Users {
		user := model.User{
			ID:       orNewID(su.ID),
			Name:     su.Name,
			Email:    su.Email,
			Role:     model.Role(su.Role),
			Chapter:  su.Chapter,
			JoinedAt: su.JoinedAt,
		}
		if _, exists := usersByEmail[user.Email]; exists {
			return nil, fmt.Errorf("duplicate seed user email %s", user.Email)
		}
		usersByEmail[user.Email] = user
		if err := store.InsertUser(&user); err != nil {
			return nil, fmt.Errorf("failed to insert seed user: %w", err)
		}
	}

	sessionIDs := make(map[string]bool)
	for i, se := range seed.Events {
		event := model.Event{
			ID:          orNewID(se.ID),
			Name:        se.Name,
			Description: se.Description,
			Location:    se.Location,
			Status:      model.EventStatus(se.Status),
		}
		if err := store.InsertEvent(&event); err != nil {
			return nil, fmt.Errorf("failed to insert seed event: %w", err)
		}

		for _, ss := range se.Sessions {
			end := ss.End
			if end.IsZero() {
				end = ss.Start.Add(2 * time.Hour)
			}
			session := model.Session{
				ID:              orNewID(ss.ID),
				EventID:         event.ID,
				Start:           ss.Start,
				End:             end,
				Location:        ss.Location,
				StudentCapacity: ss.StudentCapacity,
				ParentCapacity:  ss.ParentCapacity,
			}
			sessionIDs[session.ID] = true
			if err := store.InsertSession(&session); err != nil {
				return nil, fmt.Errorf("failed to insert seed session: %w", err)
			}
		}

		if se.Schedule != nil {
			occurrences, err := ExpandSchedule(se.Schedule.RRule)
			if err != nil {
				return nil, fmt.Errorf("invalid schedule in events[%d]: %w", i, err)
			}
			for _, start := range occurrences {
				session := model.Session{
					ID:              uuid.New().String(),
					EventID:         event.ID,
					Start:           start,
					End:             start.Add(time.Duration(se.Schedule.DurationMinutes) * time.Minute),
					StudentCapacity: se.Schedule.StudentCapacity,
					ParentCapacity:  se.Schedule.ParentCapacity,
				}
				sessionIDs[session.ID] = true
				if err := store.InsertSession(&session); err != nil {
					return nil, fmt.Errorf("failed to insert scheduled session: %w", err)
				}
			}
		}
	}

	for i, ss := range seed.Signups {
		user, ok := usersByEmail[ss.UserEmail]
		if !ok {
			return nil, fmt.Errorf("signups[%d] references unknown user %s", i, ss.UserEmail)
		}
		if !sessionIDs[ss.SessionID] {
			return nil, fmt.Errorf("signups[%d] references unknown session %s", i, ss.SessionID)
		}
		category, ok := eligibility.CategoryForRole(user.Role)
		if !ok {
			return nil, fmt.Errorf("signups[%d]: %s role cannot hold signups", i, user.Role)
		}

		status := model.SignupStatus(ss.Status)
		if ss.Status == "" {
			status = model.SignupConfirmed
		}
		attendance := model.Attendance(ss.Attendance)
		if ss.Attendance == "" {
			attendance = model.AttendanceNotMarked
		}

		signup := model.Signup{
			ID:          uuid.New().String(),
			SessionID:   ss.SessionID,
			UserID:      user.ID,
			Category:    category,
			Status:      status,
			HoursEarned: ss.HoursEarned,
			Attendance:  attendance,
		}
		if err := store.InsertSignup(&signup); err != nil {
			return nil, fmt.Errorf("failed to insert seed signup: %w", err)
		}
	}

	return store, nil
}

// ExpandSchedule parses a recurrence rule and returns its occurrence start
// times. The rule must bound itself with COUNT or UNTIL.
func ExpandSchedule(rule string) ([]time.Time, error) {
	parsed, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule: %w", err)
	}
	opts := parsed.OrigOptions
	if opts.Count == 0 && opts.Until.IsZero() {
		return nil, fmt.Errorf("rrule must be bounded by COUNT or UNTIL")
	}
	return parsed.All(), nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
