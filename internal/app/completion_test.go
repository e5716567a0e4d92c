package app

import (
	"testing"
	"time"

	"learnplay/internal/domain"
)

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name   string
		streak int
		last   time.Time
		now    time.Time
		want   int
	}{
		{"first completion", 0, time.Time{}, day(1), 1},
		{"same day keeps streak", 3, day(5), day(5).Add(6 * time.Hour), 3},
		{"next day increments", 3, day(5), day(6), 4},
		{"two day gap resets", 5, day(5), day(7), 1},
		{"cross midnight counts as next day", 2, day(5).Add(14 * time.Hour), day(6).Add(-8 * time.Hour), 3},
	}

	for _, tc := range cases {
		stats := domain.Stats{CurrentStreak: tc.streak, LastCompletedAt: tc.last}
		if got := nextStreak(stats, tc.now); got != tc.want {
			t.Fatalf("%s: expected streak %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestApplyCompletionPureOverInput(t *testing.T) {
	catalog := domain.Catalog{
		Projects: []domain.Project{{ID: "p", TotalSegments: 1}},
		Segments: []domain.Segment{{ID: "s", ProjectID: "p"}},
	}
	user := domain.User{
		ID:     "u",
		Badges: map[domain.BadgeKind]bool{},
		Stats: domain.Stats{
			CompletedSegmentIDs: map[string]struct{}{},
			QuizScores:          map[string]domain.QuizResult{},
		},
	}

	updated := applyCompletion(user, catalog, "p", "s", time.Now())
	if len(user.Stats.CompletedSegmentIDs) != 0 {
		t.Fatalf("input user was mutated")
	}
	if len(updated.Stats.CompletedSegmentIDs) != 1 {
		t.Fatalf("expected completion recorded on the returned user")
	}
	if !updated.Badges[domain.BadgeFirstSteps] {
		t.Fatalf("first segment should unlock the first-steps badge")
	}
	if !updated.Badges[domain.BadgeGettingStarted] {
		t.Fatalf("completing the only segment completes the project")
	}
}
