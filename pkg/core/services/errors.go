package services

import "errors"

// Domain errors surfaced to the CLI layer, which turns them into the
// portal's user-facing messages.
var (
	// ErrInvalidCredentials carries the fixed demo-credential mismatch message.
	ErrInvalidCredentials = errors.New("invalid email or password (the portal accepts seeded emails with the demo password)")

	ErrRoleCannotSignUp = errors.New("admins cannot sign up for sessions")
	ErrSessionInPast    = errors.New("this session has already started")
	ErrEventNotOpen     = errors.New("this event is not open for signups")
	ErrAlreadySignedUp  = errors.New("you already have an active signup for this session")
	ErrNotSignedUp      = errors.New("no active signup found for this session")
	ErrNotConfirmed     = errors.New("signup is not confirmed; waitlisted signups are dropped, not cancelled")
	ErrNotWaitlisted    = errors.New("signup is not waitlisted")
	ErrReasonRequired   = errors.New("a cancellation reason is required")

	ErrEmailTaken      = errors.New("a user with this email already exists")
	ErrEventHasSignups = errors.New("event has signup history and cannot be deleted")
	ErrBadStatusChange = errors.New("event status does not allow this change")
)
