// Package db provides the portal's data access layer. All records live in
// in-memory slices behind the store interfaces; there is no persistence.
// The portal runs on a single logical thread (the CLI loop), so the store
// uses no locking.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// ErrNotFound is returned when a record with the given id does not exist.
var ErrNotFound = errors.New("record not found")

// MemStore holds every record slice. Insertion order is meaningful: the
// leaderboard's stable sort keeps it for ties.
type MemStore struct {
	users         []model.User
	events        []model.Event
	sessions      []model.Session
	signups       []model.Signup
	notifications []model.Notification

	now func() time.Time // Overridable for notification expiry tests
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

// Users

func (s *MemStore) GetUsers(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *MemStore) InsertUser(user *model.User) error {
	s.users = append(s.users, *user)
	return nil
}

func (s *MemStore) DeleteUser(ctx context.Context, id string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Events and sessions

func (s *MemStore) GetEvents(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *MemStore) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			event := s.events[i]
			return &event, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
}

func (s *MemStore) InsertEvent(event *model.Event) error {
	s.events = append(s.events, *event)
	return nil
}

func (s *MemStore) UpdateEvent(event *model.Event) error {
	for i := range s.events {
		if s.events[i].ID == event.ID {
			s.events[i] = *event
			return nil
		}
	}
	return fmt.Errorf("event %s: %w", event.ID, ErrNotFound)
}

// DeleteEvent removes the event and its sessions. Signup records are kept
// as history even when their session goes away.
func (s *MemStore) DeleteEvent(ctx context.Context, id string) error {
	found := false
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}

	kept := s.sessions[:0]
	for _, session := range s.sessions {
		if session.EventID != id {
			kept = append(kept, session)
		}
	}
	s.sessions = kept
	return nil
}

func (s *MemStore) GetSessions(ctx context.Context) ([]model.Session, error) {
	out := make([]model.Session, len(s.sessions))
	copy(out, s.sessions)
	return out, nil
}

func (s *MemStore) GetSessionByID(ctx context.Context, id string) (*model.Session, error) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			session := s.sessions[i]
			return &session, nil
		}
	}
	return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
}

func (s *MemStore) GetSessionsByEvent(ctx context.Context, eventID string) ([]model.Session, error) {
	out := make([]model.Session, 0)
	for _, session := range s.sessions {
		if session.EventID == eventID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *MemStore) InsertSession(session *model.Session) error {
	s.sessions = append(s.sessions, *session)
	return nil
}

// Signups

func (s *MemStore) GetSignups(ctx context.Context) ([]model.Signup, error) {
	out := make([]model.Signup, len(s.signups))
	copy(out, s.signups)
	return out, nil
}

func (s *MemStore) GetSignupByID(ctx context.Context, id string) (*model.Signup, error) {
	for i := range s.signups {
		if s.signups[i].ID == id {
			signup := s.signups[i]
			return &signup, nil
		}
	}
	return nil, fmt.Errorf("signup %s: %w", id, ErrNotFound)
}

func (s *MemStore) GetSignupsByUser(ctx context.Context, userID string) ([]model.Signup, error) {
	out := make([]model.Signup, 0)
	for _, signup := range s.signups {
		if signup.UserID == userID {
			out = append(out, signup)
		}
	}
	return out, nil
}

func (s *MemStore) GetSignupsBySession(ctx context.Context, sessionID string) ([]model.Signup, error) {
	out := make([]model.Signup, 0)
	for _, signup := range s.signups {
		if signup.SessionID == sessionID {
			out = append(out, signup)
		}
	}
	return out, nil
}

func (s *MemStore) InsertSignup(signup *model.Signup) error {
	s.signups = append(s.signups, *signup)
	return nil
}

func (s *MemStore) UpdateSignup(signup *model.Signup) error {
	for i := range s.signups {
		if s.signups[i].ID == signup.ID {
			s.signups[i] = *signup
			return nil
		}
	}
	return fmt.Errorf("signup %s: %w", signup.ID, ErrNotFound)
}

// Notifications

// GetNotificationsByUser returns the user's unexpired notifications and
// prunes expired ones while it is at it.
func (s *MemStore) GetNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	now := s.now()

	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept

	out := make([]model.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *MemStore) InsertNotification(notification *model.Notification) error {
	s.notifications = append(s.notifications, *notification)
	return nil
}
