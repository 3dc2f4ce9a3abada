// Package eligibility holds the capacity rules and signup state derivation.
// Everything here is a pure computation over store snapshots; nothing mutates.
package eligibility

import "github.com/redbridgehub/volunteer-portal/pkg/core/model"

// State is a user's relationship to one session, derived from their signup
// records. Absence of any record is StateNone.
type State string

const (
	StateNone      State = "none"
	StateConfirmed State = "confirmed"
	StateWaitlist  State = "waitlist"
	StateCancelled State = "cancelled"
)

// CategoryForRole maps a role onto the capacity pool it counts against.
// Admins have no pool and are barred from signing up, so ok is false.
func CategoryForRole(role model.Role) (model.Category, bool) {
	switch role {
	case model.RoleStudent:
		return model.CategoryStudent, true
	case model.RoleParent:
		return model.CategoryParent, true
	default:
		return "", false
	}
}

// ConfirmedCount counts the confirmed signups for one session's pool.
func ConfirmedCount(signups []model.Signup, sessionID string, cat model.Category) int {
	count := 0
	for _, su := range signups {
		if su.SessionID == sessionID && su.Category == cat && su.Status == model.SignupConfirmed {
			count++
		}
	}
	return count
}

// HasOpenSpot reports whether a new signup in the given pool can be
// confirmed rather than waitlisted. Strict comparison: a pool at capacity
// has no open spot.
func HasOpenSpot(session model.Session, signups []model.Signup, cat model.Category) bool {
	return ConfirmedCount(signups, session.ID, cat) < session.CapacityFor(cat)
}

// StateFor derives the signup state for a (user, session) pair. A user has
// at most one active record per session; if only cancelled records exist the
// state is StateCancelled, which permits re-signup.
func StateFor(userID, sessionID string, signups []model.Signup) State {
	state := StateNone
	for _, su := range signups {
		if su.UserID != userID || su.SessionID != sessionID {
			continue
		}
		switch su.Status {
		case model.SignupConfirmed:
			return StateConfirmed
		case model.SignupWaitlist:
			return StateWaitlist
		case model.SignupCancelled:
			state = StateCancelled
		}
	}
	return state
}

// ActiveSignup returns the confirmed or waitlisted record for a (user,
// session) pair, or nil if there is none.
func ActiveSignup(userID, sessionID string, signups []model.Signup) *model.Signup {
	for i := range signups {
		su := &signups[i]
		if su.UserID == userID && su.SessionID == sessionID && su.Active() {
			return su
		}
	}
	return nil
}
