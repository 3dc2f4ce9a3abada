// Package stats is the read-side aggregation layer. Every figure is
// re-derived from the flat signup list on each call; nothing is cached or
// mutated.
package stats

import (
	"sort"

	"github.com/redbridgehub/volunteer-portal/pkg/core/model"
)

// Metric selects what a leaderboard ranks by.
type Metric string

const (
	MetricHours  Metric = "hours"
	MetricEvents Metric = "events"
)

func (m Metric) IsValid() bool {
	return m == MetricHours || m == MetricEvents
}

// Entry is one leaderboard row.
type Entry struct {
	UserID          string
	Name            string
	Chapter         string
	TotalHours      float64
	CompletedEvents int
}

// ChapterEntry is one row of a chapter-aggregated leaderboard.
type ChapterEntry struct {
	Chapter         string
	MemberCount     int
	TotalHours      float64
	CompletedEvents int
}

// TotalHours sums awarded hours across all of a user's signups, cancelled
// ones included (hours are awarded post-hoc and survive cancellation).
func TotalHours(signups []model.Signup) float64 {
	total := 0.0
	for _, su := range signups {
		if su.HoursEarned != nil {
			total += *su.HoursEarned
		}
	}
	return total
}

// CompletedEvents counts a user's confirmed signups. Attendance and whether
// the session has happened yet are deliberately not consulted; the figure
// has always meant "confirmed signups" in this portal.
func CompletedEvents(signups []model.Signup) int {
	count := 0
	for _, su := range signups {
		if su.Status == model.SignupConfirmed {
			count++
		}
	}
	return count
}

// Leaderboard ranks non-admin users by the chosen metric, descending. The
// sort is stable so ties keep the store's insertion order.
func Leaderboard(users []model.User, signups []model.Signup, metric Metric) []Entry {
	byUser := signupsByUser(signups)

	entries := make([]Entry, 0, len(users))
	for _, user := range users {
		if user.Role == model.RoleAdmin {
			continue
		}
		userSignups := byUser[user.ID]
		entries = append(entries, Entry{
			UserID:          user.ID,
			Name:            user.Name,
			Chapter:         user.Chapter,
			TotalHours:      TotalHours(userSignups),
			CompletedEvents: CompletedEvents(userSignups),
		})
	}

	sortEntries(entries, metric)
	return entries
}

// ChapterLeaderboard aggregates per-chapter totals and ranks them the same
// way. Users without a chapter are grouped under the empty key.
func ChapterLeaderboard(users []model.User, signups []model.Signup, metric Metric) []ChapterEntry {
	byUser := signupsByUser(signups)

	// Preserve first-seen chapter order for stable ties
	order := make([]string, 0)
	byChapter := make(map[string]*ChapterEntry)
	for _, user := range users {
		if user.Role == model.RoleAdmin {
			continue
		}
		entry, ok := byChapter[user.Chapter]
		if !ok {
			entry = &ChapterEntry{Chapter: user.Chapter}
			byChapter[user.Chapter] = entry
			order = append(order, user.Chapter)
		}
		userSignups := byUser[user.ID]
		entry.MemberCount++
		entry.TotalHours += TotalHours(userSignups)
		entry.CompletedEvents += CompletedEvents(userSignups)
	}

	entries := make([]ChapterEntry, 0, len(order))
	for _, chapter := range order {
		entries = append(entries, *byChapter[chapter])
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if metric == MetricEvents {
			return entries[i].CompletedEvents > entries[j].CompletedEvents
		}
		return entries[i].TotalHours > entries[j].TotalHours
	})
	return entries
}

func sortEntries(entries []Entry, metric Metric) {
	sort.SliceStable(entries, func(i, j int) bool {
		if metric == MetricEvents {
			return entries[i].CompletedEvents > entries[j].CompletedEvents
		}
		return entries[i].TotalHours > entries[j].TotalHours
	})
}

func signupsByUser(signups []model.Signup) map[string][]model.Signup {
	byUser := make(map[string][]model.Signup)
	for _, su := range signups {
		byUser[su.UserID] = append(byUser[su.UserID], su)
	}
	return byUser
}
