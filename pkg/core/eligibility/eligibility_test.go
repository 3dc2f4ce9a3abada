package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

func testSession(studentCap, parentCap int) model.Session {
	return model.Session{
		ID:              "session-1",
		EventID:         "event-1",
		Start:           time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		End:             time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
		StudentCapacity: studentCap,
		ParentCapacity:  parentCap,
	}
}

func confirmedSignup(id, userID string, cat model.Category) model.Signup {
	return model.Signup{
		ID:         id,
		SessionID:  "session-1",
		UserID:     userID,
		Category:   cat,
		Status:     model.SignupConfirmed,
		Attendance: model.AttendanceNotMarked,
	}
}

func TestCategoryForRole(t *testing.T) {
	cat, ok := CategoryForRole(model.RoleStudent)
	assert.True(t, ok)
	assert.Equal(t, model.CategoryStudent, cat)

	cat, ok = CategoryForRole(model.RoleParent)
	assert.True(t, ok)
	assert.Equal(t, model.CategoryParent, cat)

	_, ok = CategoryForRole(model.RoleAdmin)
	assert.False(t, ok, "admins never participate in capacity accounting")
}

func TestHasOpenSpot_EmptySession(t *testing.T) {
	session := testSession(5, 3)

	assert.True(t, HasOpenSpot(session, nil, model.CategoryStudent))
	assert.True(t, HasOpenSpot(session, nil, model.CategoryParent))
}

func TestHasOpenSpot_PoolsAreIndependent(t *testing.T) {
	session := testSession(1, 2)
	signups := []model.Signup{
		confirmedSignup("s1", "user-1", model.CategoryStudent),
	}

	// Student pool full at capacity 1, parent pool untouched
	assert.False(t, HasOpenSpot(session, signups, model.CategoryStudent))
	assert.True(t, HasOpenSpot(session, signups, model.CategoryParent))
}

func TestHasOpenSpot_IgnoresCancelledAndWaitlisted(t *testing.T) {
	session := testSession(2, 2)
	signups := []model.Signup{
		confirmedSignup("s1", "user-1", model.CategoryStudent),
		{
			ID: "s2", SessionID: "session-1", UserID: "user-2",
			Category: model.CategoryStudent, Status: model.SignupCancelled,
		},
		{
			ID: "s3", SessionID: "session-1", UserID: "user-3",
			Category: model.CategoryStudent, Status: model.SignupWaitlist,
		},
	}

	// Only the confirmed record counts against capacity
	assert.Equal(t, 1, ConfirmedCount(signups, "session-1", model.CategoryStudent))
	assert.True(t, HasOpenSpot(session, signups, model.CategoryStudent))
}

func TestHasOpenSpot_IgnoresOtherSessions(t *testing.T) {
	session := testSession(1, 1)
	signups := []model.Signup{
		{
			ID: "s1", SessionID: "session-other", UserID: "user-1",
			Category: model.CategoryStudent, Status: model.SignupConfirmed,
		},
	}

	assert.True(t, HasOpenSpot(session, signups, model.CategoryStudent))
}

func TestStateFor_NoRecordsIsNone(t *testing.T) {
	assert.Equal(t, StateNone, StateFor("user-1", "session-1", nil))
}

func TestStateFor_ActiveRecordWins(t *testing.T) {
	cancelled := model.Signup{
		ID: "s1", SessionID: "session-1", UserID: "user-1",
		Category: model.CategoryStudent, Status: model.SignupCancelled,
	}
	confirmed := confirmedSignup("s2", "user-1", model.CategoryStudent)

	// A cancelled record followed by a re-signup leaves the user confirmed
	signups := []model.Signup{cancelled, confirmed}
	assert.Equal(t, StateConfirmed, StateFor("user-1", "session-1", signups))

	// Only the cancelled record: state is cancelled, re-signup permitted
	assert.Equal(t, StateCancelled, StateFor("user-1", "session-1", []model.Signup{cancelled}))
}

func TestStateFor_Waitlist(t *testing.T) {
	signups := []model.Signup{
		{
			ID: "s1", SessionID: "session-1", UserID: "user-1",
			Category: model.CategoryStudent, Status: model.SignupWaitlist,
		},
	}
	assert.Equal(t, StateWaitlist, StateFor("user-1", "session-1", signups))
}

func TestActiveSignup(t *testing.T) {
	signups := []model.Signup{
		{
			ID: "s1", SessionID: "session-1", UserID: "user-1",
			Category: model.CategoryStudent, Status: model.SignupCancelled,
		},
		{
			ID: "s2", SessionID: "session-1", UserID: "user-1",
			Category: model.CategoryStudent, Status: model.SignupWaitlist,
		},
	}

	active := ActiveSignup("user-1", "session-1", signups)
	assert.NotNil(t, active)
	assert.Equal(t, "s2", active.ID)

	assert.Nil(t, ActiveSignup("user-2", "session-1", signups))
}
