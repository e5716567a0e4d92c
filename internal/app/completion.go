package app

import (
	"time"

	"learnplay/internal/domain"
)

// applyCompletion marks a segment complete and returns the updated user.
// Pure over its inputs and idempotent: an unknown (project, segment) pair
// or an already-completed segment returns the user unchanged.
func applyCompletion(user domain.User, catalog domain.Catalog, projectID, segmentID string, now time.Time) domain.User {
	if _, ok := catalog.Segment(projectID, segmentID); !ok {
		return user
	}
	if _, done := user.Stats.CompletedSegmentIDs[segmentID]; done {
		return user
	}

	updated := cloneUser(user)
	updated.Stats.CompletedSegmentIDs[segmentID] = struct{}{}
	updated.Stats.SegmentsCompleted = len(updated.Stats.CompletedSegmentIDs)
	updated.Stats.ProjectsCompleted = domain.CompletedProjects(updated.Stats, catalog)
	updated.Stats.CurrentStreak = nextStreak(updated.Stats, now)
	updated.Stats.LastCompletedAt = now

	for _, kind := range domain.ProgressBadges(updated.Stats) {
		updated.Badges[kind] = true
	}
	return updated
}

// nextStreak advances the daily streak: first completion starts at 1,
// same-day completions keep it, a consecutive calendar day increments it,
// any longer gap resets to 1.
func nextStreak(stats domain.Stats, now time.Time) int {
	last := stats.LastCompletedAt
	switch {
	case last.IsZero():
		return 1
	case sameDay(last, now):
		if stats.CurrentStreak == 0 {
			return 1
		}
		return stats.CurrentStreak
	case sameDay(last.AddDate(0, 0, 1), now):
		return stats.CurrentStreak + 1
	default:
		return 1
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
