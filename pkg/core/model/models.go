package model

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleParent || r == RoleAdmin
}

// Category identifies which of a session's two capacity pools a signup
// counts against. Admins have no category and never hold signups.
type Category string

const (
	CategoryStudent Category = "student"
	CategoryParent  Category = "parent"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventArchived  EventStatus = "archived"
)

func (s EventStatus) IsValid() bool {
	return s == EventDraft || s == EventPublished || s == EventArchived
}

type SignupStatus string

const (
	SignupConfirmed SignupStatus = "confirmed"
	SignupWaitlist  SignupStatus = "waitlist"
	SignupCancelled SignupStatus = "cancelled"
)

type Attendance string

const (
	AttendancePresent   Attendance = "present"
	AttendanceAbsent    Attendance = "absent"
	AttendanceNotMarked Attendance = "not_marked"
)

func (a Attendance) IsValid() bool {
	return a == AttendancePresent || a == AttendanceAbsent || a == AttendanceNotMarked
}

// User represents a portal member
type User struct {
	ID       string
	Name     string
	Email    string
	Role     Role
	Chapter  string // Empty string if no chapter
	JoinedAt time.Time
}

// Event represents a named volunteer opportunity owning a sequence of sessions
type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	Status      EventStatus
}

// Session represents one scheduled occurrence of an event with its own
// capacity pools and roster
type Session struct {
	ID              string
	EventID         string
	Start           time.Time
	End             time.Time
	Location        string // Empty string inherits the event location
	StudentCapacity int
	ParentCapacity  int
}

// CapacityFor returns the capacity of the given pool.
func (s Session) CapacityFor(cat Category) int {
	if cat == CategoryParent {
		return s.ParentCapacity
	}
	return s.StudentCapacity
}

// IsPast reports whether the session has already started.
func (s Session) IsPast(now time.Time) bool {
	return s.Start.Before(now)
}

// Signup represents the relationship between one user and one session.
// Cancelling marks the record rather than deleting it, so history is kept.
type Signup struct {
	ID           string
	SessionID    string
	UserID       string
	Category     Category
	Status       SignupStatus
	CancelReason string     // Set when a confirmed signup is cancelled
	HoursEarned  *float64   // Set post-hoc by an admin, nil until awarded
	Attendance   Attendance
	CreatedAt    time.Time
	CancelledAt  *time.Time
}

// Active reports whether the signup still occupies a place in the machine
// (confirmed or waitlisted).
func (s Signup) Active() bool {
	return s.Status == SignupConfirmed || s.Status == SignupWaitlist
}

// Notification is an in-memory, auto-expiring message for a user. There is
// no delivery; expired notifications are pruned on read.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}
