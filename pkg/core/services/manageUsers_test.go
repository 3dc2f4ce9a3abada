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

func TestCreateUser(t *testing.T) {
	store := db.NewMemStore()
	ctx := context.Background()

	user, err := CreateUser(ctx, store, zap.NewNop(), CreateUserRequest{
		Name:    "Amira",
		Email:   "amira@example.org",
		Role:    "student",
		Chapter: "East",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.False(t, user.JoinedAt.IsZero())

	stored, err := store.GetUserByEmail(ctx, "amira@example.org")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := db.NewMemStore()
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := CreateUser(ctx, store, logger, CreateUserRequest{Name: "Amira", Email: "amira@example.org", Role: "student"})
	require.NoError(t, err)

	_, err = CreateUser(ctx, store, logger, CreateUserRequest{Name: "Impostor", Email: "amira@example.org", Role: "parent"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_Validation(t *testing.T) {
	store := db.NewMemStore()
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := CreateUser(ctx, store, logger, CreateUserRequest{Name: "Amira", Email: "not-an-email", Role: "student"})
	assert.Error(t, err)

	_, err = CreateUser(ctx, store, logger, CreateUserRequest{Name: "Amira", Email: "amira@example.org", Role: "superuser"})
	assert.Error(t, err)
}

func TestDeleteUser_KeepsSignupHistory(t *testing.T) {
	f := newFixture(t, 5, 5)
	ctx := context.Background()
	logger := zap.NewNop()

	_, err := SignUp(ctx, f.store, testConfig(), logger, f.student.ID, f.session.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteUser(ctx, f.store, logger, f.student.ID))

	_, err = f.store.GetUserByID(ctx, f.student.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	signups, err := f.store.GetSignupsByUser(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Len(t, signups, 1, "signup history outlives the user record")
}

func TestListUsers(t *testing.T) {
	f := newFixture(t, 5, 5)

	users, err := ListUsers(context.Background(), f.store, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
