package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/db"
)

func TestRoster_GroupsByPool(t *testing.T) {
	f := newFixture(t, 1, 2)
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)
	_, err = SignUp(ctx, f.store, testConfig(), logger, f.parent.ID, f.session.ID)
	require.NoError(t, err)
	waitlisted, err := SignUp(ctx, f.store, testConfig(), logger, f.student2.ID, f.session.ID)
	require.NoError(t, err)
	require.Equal(t, model.SignupWaitlist, waitlisted.Signup.Status)

	roster, err := Roster(ctx, f.store, logger, f.session.ID)
	require.NoError(t, err)

	assert.Equal(t, "Park Cleanup", roster.EventName)
	require.Len(t, roster.Students, 1)
	assert.Equal(t, "Amira", roster.Students[0].UserName)
	require.Len(t, roster.Parents, 1)
	assert.Equal(t, "Ben", roster.Parents[0].UserName)
	require.Len(t, roster.Waitlist, 1)
	assert.Equal(t, "Cleo", roster.Waitlist[0].UserName)
	assert.Empty(t, roster.Cancelled)
}

func TestRecordAttendance(t *testing.T) {
	f := newFixture(t, 5, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)

	updated, err := RecordAttendance(ctx, f.store, logger, result.Signup.ID, model.AttendancePresent)
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, updated.Attendance)

	_, err = RecordAttendance(ctx, f.store, logger, result.Signup.ID, model.Attendance("maybe"))
	assert.Error(t, err)

	_, err = RecordAttendance(ctx, f.store, logger, "missing", model.AttendancePresent)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestAwardHours_RoundTrip(t *testing.T) {
	f := newFixture(t, 5, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	first, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)

	second := f.session
	second.ID = "session-2"
	second.Start = f.session.Start.AddDate(0, 0, 7)
	require.NoError(t, f.store.InsertSession(&second))
	secondSignup, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, second.ID)
	require.NoError(t, err)

	_, err = AwardHours(ctx, f.store, testConfig(), logger, first.Signup.ID, 3)
	require.NoError(t, err)
	_, err = AwardHours(ctx, f.store, testConfig(), logger, secondSignup.Signup.ID, 1.5)
	require.NoError(t, err)

	// Summing reproduces exactly what was awarded
	summary, err := MyHours(ctx, f.store, logger, f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.TotalHours)
	assert.Equal(t, 2, summary.CompletedEvents)
}

func TestAwardHours_NegativeRejected(t *testing.T) {
	f := newFixture(t, 5, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)

	_, err = AwardHours(ctx, f.store, testConfig(), logger, result.Signup.ID, -1)
	assert.Error(t, err)
}

func TestRemoveSignup(t *testing.T) {
	f := newFixture(t, 5, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	result, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)

	removed, err := RemoveSignup(ctx, f.store, testConfig(), logger, result.Signup.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.SignupCancelled, removed.Status)
	assert.Equal(t, "removed by an organizer", removed.CancelReason)

	// Removing an already-cancelled record fails
	_, err = RemoveSignup(ctx, f.store, testConfig(), logger, result.Signup.ID, "")
	assert.ErrorIs(t, err, ErrNotSignedUp)

	// The user can sign up again afterwards
	again, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SignupConfirmed, again.Signup.Status)
}
