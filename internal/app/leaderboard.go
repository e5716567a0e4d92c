package app

import (
	"context"
	"log"
	"sort"
	"time"

	"learnplay/internal/domain"
)

// rankLeaderboard rebuilds the ranking wholesale from the static roster
// plus the current learner's derived points. Ranks come out 1-based,
// unique and contiguous; ties break by name so reordering is stable.
func rankLeaderboard(user domain.User, roster []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(roster)+1)
	for _, entry := range roster {
		entry.Rank = 0
		entries = append(entries, entry)
	}
	entries = append(entries, domain.LeaderboardEntry{
		Name:   user.DisplayName,
		Points: domain.Points(user.Stats),
		Badges: user.HeldBadges(),
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Name < entries[j].Name
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// RefreshMarkStore persists the wall-clock time of the last leaderboard
// refresh under a fixed key.
type RefreshMarkStore interface {
	LastRefresh(ctx context.Context) (time.Time, bool, error)
	SetLastRefresh(ctx context.Context, at time.Time) error
}

// RefreshPolicy gates leaderboard recomputation on staleness: refresh when
// no mark exists or the mark is older than maxAge. Staleness up to maxAge
// is acceptable; this is cache invalidation, not correctness.
type RefreshPolicy struct {
	marks  RefreshMarkStore
	maxAge time.Duration
	now    func() time.Time
}

func NewRefreshPolicy(marks RefreshMarkStore, maxAge time.Duration) *RefreshPolicy {
	return NewRefreshPolicyWithClock(marks, maxAge, time.Now)
}

// NewRefreshPolicyWithClock allows deterministic time in tests.
func NewRefreshPolicyWithClock(marks RefreshMarkStore, maxAge time.Duration, now func() time.Time) *RefreshPolicy {
	return &RefreshPolicy{marks: marks, maxAge: maxAge, now: now}
}

// Due reports whether a refresh should run now. A mark-store read failure
// counts as due: refreshing too often is harmless, skipping on a broken
// store could pin a stale board forever.
func (p *RefreshPolicy) Due(ctx context.Context) bool {
	at, ok, err := p.marks.LastRefresh(ctx)
	if err != nil {
		log.Printf("leaderboard refresh mark read failed, refreshing anyway: %v", err)
		return true
	}
	if !ok {
		return true
	}
	return p.now().Sub(at) > p.maxAge
}

// MarkRefreshed persists the refresh time, best effort.
func (p *RefreshPolicy) MarkRefreshed(ctx context.Context) {
	if err := p.marks.SetLastRefresh(ctx, p.now()); err != nil {
		log.Printf("persist leaderboard refresh mark: %v", err)
	}
}

// RefreshLeaderboard runs UPDATE_LEADERBOARD when the policy says the
// board is stale, and records the new mark. Returns the snapshot either
// way, with refreshed reporting whether a recompute happened.
func (s *ProgressStore) RefreshLeaderboard(ctx context.Context, policy *RefreshPolicy) (Snapshot, bool) {
	if !policy.Due(ctx) {
		return s.Snapshot(), false
	}
	snap := s.Dispatch(Transition{Kind: UpdateLeaderboard})
	policy.MarkRefreshed(ctx)
	return snap, true
}
