package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

func hours(h float64) *float64 {
	return &h
}

func TestTotalHours(t *testing.T) {
	signups := []model.Signup{
		{ID: "s1", UserID: "user-1", Status: model.SignupConfirmed, HoursEarned: hours(3)},
		{ID: "s2", UserID: "user-1", Status: model.SignupConfirmed, HoursEarned: nil},
		{ID: "s3", UserID: "user-1", Status: model.SignupCancelled, HoursEarned: hours(1.5)},
	}

	// Cancelled signups keep their awarded hours
	assert.Equal(t, 4.5, TotalHours(signups))
	assert.Equal(t, 0.0, TotalHours(nil))
}

func TestCompletedEvents_CountsConfirmedOnly(t *testing.T) {
	signups := []model.Signup{
		{ID: "s1", Status: model.SignupConfirmed, Attendance: model.AttendanceAbsent},
		{ID: "s2", Status: model.SignupConfirmed, Attendance: model.AttendanceNotMarked},
		{ID: "s3", Status: model.SignupWaitlist},
		{ID: "s4", Status: model.SignupCancelled},
	}

	// Attendance is not consulted, only the confirmed status
	assert.Equal(t, 2, CompletedEvents(signups))
}

func TestLeaderboard_RanksByHoursDescending(t *testing.T) {
	users := []model.User{
		{ID: "user-1", Name: "Amira", Role: model.RoleStudent, Chapter: "East"},
		{ID: "user-2", Name: "Ben", Role: model.RoleParent, Chapter: "West"},
		{ID: "user-3", Name: "Cleo", Role: model.RoleStudent, Chapter: "East"},
		{ID: "admin-1", Name: "Dana", Role: model.RoleAdmin},
	}
	signups := []model.Signup{
		{ID: "s1", UserID: "user-1", Status: model.SignupConfirmed, HoursEarned: hours(2)},
		{ID: "s2", UserID: "user-2", Status: model.SignupConfirmed, HoursEarned: hours(6)},
		{ID: "s3", UserID: "user-3", Status: model.SignupConfirmed, HoursEarned: hours(4)},
	}

	board := Leaderboard(users, signups, MetricHours)
	require.Len(t, board, 3, "admins are excluded")

	assert.Equal(t, "Ben", board[0].Name)
	assert.Equal(t, "Cleo", board[1].Name)
	assert.Equal(t, "Amira", board[2].Name)

	// Output is non-increasing by the ranked metric
	for i := 1; i < len(board); i++ {
		assert.LessOrEqual(t, board[i].TotalHours, board[i-1].TotalHours)
	}
}

func TestLeaderboard_TiesKeepInsertionOrder(t *testing.T) {
	users := []model.User{
		{ID: "user-1", Name: "First", Role: model.RoleStudent},
		{ID: "user-2", Name: "Second", Role: model.RoleStudent},
		{ID: "user-3", Name: "Third", Role: model.RoleStudent},
	}
	signups := []model.Signup{
		{ID: "s1", UserID: "user-1", Status: model.SignupConfirmed, HoursEarned: hours(5)},
		{ID: "s2", UserID: "user-2", Status: model.SignupConfirmed, HoursEarned: hours(5)},
		{ID: "s3", UserID: "user-3", Status: model.SignupConfirmed, HoursEarned: hours(5)},
	}

	board := Leaderboard(users, signups, MetricHours)
	require.Len(t, board, 3)
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{board[0].Name, board[1].Name, board[2].Name})
}

func TestLeaderboard_ByEvents(t *testing.T) {
	users := []model.User{
		{ID: "user-1", Name: "Amira", Role: model.RoleStudent},
		{ID: "user-2", Name: "Ben", Role: model.RoleParent},
	}
	signups := []model.Signup{
		{ID: "s1", UserID: "user-1", Status: model.SignupConfirmed},
		{ID: "s2", UserID: "user-2", Status: model.SignupConfirmed},
		{ID: "s3", UserID: "user-2", Status: model.SignupConfirmed},
		{ID: "s4", UserID: "user-1", Status: model.SignupWaitlist},
	}

	board := Leaderboard(users, signups, MetricEvents)
	require.Len(t, board, 2)
	assert.Equal(t, "Ben", board[0].Name)
	assert.Equal(t, 2, board[0].CompletedEvents)
}

func TestChapterLeaderboard(t *testing.T) {
	users := []model.User{
		{ID: "user-1", Name: "Amira", Role: model.RoleStudent, Chapter: "East"},
		{ID: "user-2", Name: "Ben", Role: model.RoleParent, Chapter: "West"},
		{ID: "user-3", Name: "Cleo", Role: model.RoleStudent, Chapter: "East"},
	}
	signups := []model.Signup{
		{ID: "s1", UserID: "user-1", Status: model.SignupConfirmed, HoursEarned: hours(2)},
		{ID: "s2", UserID: "user-2", Status: model.SignupConfirmed, HoursEarned: hours(3)},
		{ID: "s3", UserID: "user-3", Status: model.SignupConfirmed, HoursEarned: hours(4)},
	}

	board := ChapterLeaderboard(users, signups, MetricHours)
	require.Len(t, board, 2)

	assert.Equal(t, "East", board[0].Chapter)
	assert.Equal(t, 6.0, board[0].TotalHours)
	assert.Equal(t, 2, board[0].MemberCount)
	assert.Equal(t, "West", board[1].Chapter)
}
