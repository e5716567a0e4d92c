package app

import (
	"fmt"
	"sync"
	"time"

	"learnplay/internal/domain"
)

// TransitionKind names a discrete state mutation accepted by the store.
type TransitionKind string

const (
	CompleteSegment   TransitionKind = "COMPLETE_SEGMENT"
	SubmitQuiz        TransitionKind = "SUBMIT_QUIZ"
	ResetQuiz         TransitionKind = "RESET_QUIZ"
	UpdateLeaderboard TransitionKind = "UPDATE_LEADERBOARD"
)

// Transition is a dispatch request. Only the fields relevant to Kind are read.
type Transition struct {
	Kind           TransitionKind `json:"kind"`
	ProjectID      string         `json:"projectId,omitempty"`
	SegmentID      string         `json:"segmentId,omitempty"`
	Score          int            `json:"score,omitempty"`
	TotalQuestions int            `json:"totalQuestions,omitempty"`
}

// ProjectProgress is a project decorated with the derived completion count.
type ProjectProgress struct {
	domain.Project
	CompletedSegments int `json:"completedSegments"`
}

// Snapshot is the immutable view handed to consumers after every dispatch.
// The user and leaderboard are deep copies; catalog data is shared but
// never mutated.
type Snapshot struct {
	Projects    []ProjectProgress         `json:"projects"`
	Segments    []domain.Segment          `json:"segments"`
	Quizzes     []domain.Quiz             `json:"quizzes"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	CurrentUser domain.User               `json:"currentUser"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

// ProgressStore owns the single learner's session state. All mutation goes
// through Dispatch, which serializes transitions under one mutex; consumers
// only ever see snapshots.
type ProgressStore struct {
	catalog domain.Catalog
	now     func() time.Time

	mu          sync.RWMutex
	user        domain.User
	leaderboard []domain.LeaderboardEntry
	subscribers map[chan Snapshot]struct{}
}

// NewProgressStore builds a store over a validated catalog and seed user.
func NewProgressStore(catalog domain.Catalog, user domain.User) *ProgressStore {
	return NewProgressStoreWithClock(catalog, user, time.Now)
}

// NewProgressStoreWithClock allows deterministic timestamps in tests.
func NewProgressStoreWithClock(catalog domain.Catalog, user domain.User, now func() time.Time) *ProgressStore {
	s := &ProgressStore{
		catalog:     catalog,
		now:         now,
		user:        cloneUser(user),
		subscribers: make(map[chan Snapshot]struct{}),
	}
	if s.user.Stats.CompletedSegmentIDs == nil {
		s.user.Stats.CompletedSegmentIDs = make(map[string]struct{})
	}
	if s.user.Stats.QuizScores == nil {
		s.user.Stats.QuizScores = make(map[string]domain.QuizResult)
	}
	if s.user.Badges == nil {
		s.user.Badges = make(map[domain.BadgeKind]bool)
	}
	s.leaderboard = rankLeaderboard(s.user, catalog.Roster)
	return s
}

// Dispatch applies one transition and returns the resulting snapshot.
// Unknown project or segment ids are ignored (the UI sources ids from
// snapshots, so a miss means a stale reference, not a caller bug).
// An unrecognized kind is a caller bug and panics.
func (s *ProgressStore) Dispatch(t Transition) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch t.Kind {
	case CompleteSegment:
		s.user = applyCompletion(s.user, s.catalog, t.ProjectID, t.SegmentID, s.now())
	case SubmitQuiz:
		s.applySubmitQuizLocked(t)
	case ResetQuiz:
		delete(s.user.Stats.QuizScores, t.ProjectID)
	case UpdateLeaderboard:
		s.leaderboard = rankLeaderboard(s.user, s.catalog.Roster)
	default:
		panic(fmt.Sprintf("progress store: unrecognized transition kind %q", t.Kind))
	}

	s.assertDerivedCountersLocked()
	return s.broadcastLocked()
}

func (s *ProgressStore) applySubmitQuizLocked(t Transition) {
	if t.TotalQuestions <= 0 || t.Score < 0 || t.Score > t.TotalQuestions {
		return
	}
	project, ok := s.catalog.Project(t.ProjectID)
	if !ok {
		return
	}
	s.user.Stats.QuizScores[t.ProjectID] = domain.QuizResult{
		Score:          t.Score,
		TotalQuestions: t.TotalQuestions,
		ProjectName:    project.Title,
	}
	if t.Score == t.TotalQuestions && !s.user.Badges[domain.BadgeQuizWhiz] {
		s.user.Badges[domain.BadgeQuizWhiz] = true
	}
}

// assertDerivedCountersLocked recomputes the convenience counters from the
// authoritative completed-segment set after every write, so a cached value
// can never drift from the derivation.
func (s *ProgressStore) assertDerivedCountersLocked() {
	s.user.Stats.SegmentsCompleted = len(s.user.Stats.CompletedSegmentIDs)
	s.user.Stats.ProjectsCompleted = domain.CompletedProjects(s.user.Stats, s.catalog)
}

// Snapshot returns the current immutable view without mutating anything.
func (s *ProgressStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot after every dispatch,
// starting with the current one. The cancel function must be called to
// avoid leaks.
func (s *ProgressStore) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *ProgressStore) broadcastLocked() Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Drop the oldest pending snapshot so a slow consumer only
			// loses intermediate states, never the latest one.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *ProgressStore) snapshotLocked() Snapshot {
	projects := make([]ProjectProgress, 0, len(s.catalog.Projects))
	for _, p := range s.catalog.Projects {
		projects = append(projects, ProjectProgress{
			Project:           p,
			CompletedSegments: domain.CompletedSegments(s.user.Stats, s.catalog, p.ID),
		})
	}

	leaderboard := make([]domain.LeaderboardEntry, len(s.leaderboard))
	copy(leaderboard, s.leaderboard)

	return Snapshot{
		Projects:    projects,
		Segments:    s.catalog.Segments,
		Quizzes:     s.catalog.Quizzes,
		Leaderboard: leaderboard,
		CurrentUser: cloneUser(s.user),
		UpdatedAt:   s.now(),
	}
}

func cloneUser(u domain.User) domain.User {
	clone := u
	clone.Badges = make(map[domain.BadgeKind]bool, len(u.Badges))
	for kind, held := range u.Badges {
		clone.Badges[kind] = held
	}
	clone.Stats.CompletedSegmentIDs = make(map[string]struct{}, len(u.Stats.CompletedSegmentIDs))
	for id := range u.Stats.CompletedSegmentIDs {
		clone.Stats.CompletedSegmentIDs[id] = struct{}{}
	}
	clone.Stats.QuizScores = make(map[string]domain.QuizResult, len(u.Stats.QuizScores))
	for id, result := range u.Stats.QuizScores {
		clone.Stats.QuizScores[id] = result
	}
	return clone
}
