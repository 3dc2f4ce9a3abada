package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
	"github.com/redbridgehub/volunteer-portal/pkg/core/stats"
)

// LeaderboardResult carries either individual or chapter rankings
type LeaderboardResult struct {
	Metric   stats.Metric
	Entries  []stats.Entry
	Chapters []stats.ChapterEntry
}

// LeaderboardStore defines the database operations needed for the leaderboard
type LeaderboardStore interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetSignups(ctx context.Context) ([]model.Signup, error)
}

// BuildLeaderboard re-derives the rankings from the flat signup list.
// byChapter switches between individual and chapter aggregates.
func BuildLeaderboard(ctx context.Context, database LeaderboardStore, logger *zap.Logger, metric stats.Metric, byChapter bool) (*LeaderboardResult, error) {
	if !metric.IsValid() {
		return nil, fmt.Errorf("unknown leaderboard metric %q", metric)
	}

	users, err := database.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	signups, err := database.GetSignups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	result := &LeaderboardResult{Metric: metric}
	if byChapter {
		result.Chapters = stats.ChapterLeaderboard(users, signups, metric)
		logger.Debug("Chapter leaderboard built", zap.Int("rows", len(result.Chapters)))
	} else {
		result.Entries = stats.Leaderboard(users, signups, metric)
		logger.Debug("Leaderboard built", zap.Int("rows", len(result.Entries)))
	}
	return result, nil
}
