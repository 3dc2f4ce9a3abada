package db

import (
	"context"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// UserStore defines the interface for user record operations
type UserStore interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertUser(user *model.User) error
	DeleteUser(ctx context.Context, id string) error
}

// EventStore defines the interface for event and session record operations
type EventStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	InsertEvent(event *model.Event) error
	UpdateEvent(event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetSessions(ctx context.Context) ([]model.Session, error)
	GetSessionByID(ctx context.Context, id string) (*model.Session, error)
	GetSessionsByEvent(ctx context.Context, eventID string) ([]model.Session, error)
	InsertSession(session *model.Session) error
}

// SignupStore defines the interface for signup record operations
type SignupStore interface {
	GetSignups(ctx context.Context) ([]model.Signup, error)
	GetSignupByID(ctx context.Context, id string) (*model.Signup, error)
	GetSignupsByUser(ctx context.Context, userID string) ([]model.Signup, error)
	GetSignupsBySession(ctx context.Context, sessionID string) ([]model.Signup, error)
	InsertSignup(signup *model.Signup) error
	UpdateSignup(signup *model.Signup) error
}

// NotificationStore defines the interface for notification operations
type NotificationStore interface {
	GetNotificationsByUser(ctx context.Context, userID string) ([]model.Notification, error)
	InsertNotification(notification *model.Notification) error
}
