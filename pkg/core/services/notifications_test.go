package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListNotifications_NewestFirst(t *testing.T) {
	f := newFixture(t, 1, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)
	_, err = CancelSignup(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID, "schedule conflict")
	require.NoError(t, err)

	notifications, err := ListNotifications(ctx, f.store, logger, f.student.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Contains(t, notifications[0].Message, "cancelled")
	assert.Contains(t, notifications[1].Message, "confirmed")
}

func TestListNotifications_Empty(t *testing.T) {
	f := newFixture(t, 5, 5)

	notifications, err := ListNotifications(context.Background(), f.store, zap.NewNop(), f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
