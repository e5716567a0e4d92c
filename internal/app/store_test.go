package app_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"learnplay/internal/app"
	"learnplay/internal/domain"
	"learnplay/internal/infra/memory"
)

func TestCompleteSegmentIsIdempotent(t *testing.T) {
	store := newTestStore(time.Now)

	first := store.Dispatch(completeSegment("proj-1", "seg-1a"))
	second := store.Dispatch(completeSegment("proj-1", "seg-1a"))

	if first.CurrentUser.Stats.SegmentsCompleted != 1 {
		t.Fatalf("expected 1 segment completed, got %d", first.CurrentUser.Stats.SegmentsCompleted)
	}
	if second.CurrentUser.Stats.SegmentsCompleted != 1 {
		t.Fatalf("repeat completion changed state: %d segments", second.CurrentUser.Stats.SegmentsCompleted)
	}
	if second.CurrentUser.Stats.CurrentStreak != first.CurrentUser.Stats.CurrentStreak {
		t.Fatalf("repeat completion changed streak")
	}
}

func TestCompletionDerivesProjectProgress(t *testing.T) {
	store := newTestStore(time.Now)

	snap := store.Dispatch(completeSegment("proj-1", "seg-1a"))
	if got := projectProgress(t, snap, "proj-1").CompletedSegments; got != 1 {
		t.Fatalf("expected 1 completed segment, got %d", got)
	}
	if snap.CurrentUser.Stats.ProjectsCompleted != 0 {
		t.Fatalf("project should not be complete yet")
	}

	snap = store.Dispatch(completeSegment("proj-1", "seg-1b"))
	if got := projectProgress(t, snap, "proj-1").CompletedSegments; got != 2 {
		t.Fatalf("expected 2 completed segments, got %d", got)
	}
	if snap.CurrentUser.Stats.ProjectsCompleted != 1 {
		t.Fatalf("expected project completion, got %d", snap.CurrentUser.Stats.ProjectsCompleted)
	}

	// Derived count never exceeds the declared total.
	for _, p := range snap.Projects {
		if p.CompletedSegments > p.TotalSegments {
			t.Fatalf("project %s: completed %d > total %d", p.ID, p.CompletedSegments, p.TotalSegments)
		}
	}
}

func TestUnknownIDsAreIgnored(t *testing.T) {
	store := newTestStore(time.Now)
	before := store.Snapshot()

	snap := store.Dispatch(completeSegment("proj-1", "seg-nope"))
	if snap.CurrentUser.Stats.SegmentsCompleted != before.CurrentUser.Stats.SegmentsCompleted {
		t.Fatalf("unknown segment mutated state")
	}

	snap = store.Dispatch(completeSegment("proj-2", "seg-1a")) // wrong project for this segment
	if snap.CurrentUser.Stats.SegmentsCompleted != 0 {
		t.Fatalf("segment completed against wrong project")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-nope", Score: 1, TotalQuestions: 2})
	if len(snap.CurrentUser.Stats.QuizScores) != 0 {
		t.Fatalf("quiz result stored for unknown project")
	}
}

func TestUnrecognizedTransitionKindPanics(t *testing.T) {
	store := newTestStore(time.Now)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unrecognized transition kind")
		}
	}()
	store.Dispatch(app.Transition{Kind: "EXPLODE"})
}

func TestSubmitQuizGuardsAndOverwrite(t *testing.T) {
	store := newTestStore(time.Now)

	snap := store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: 1, TotalQuestions: 0})
	if len(snap.CurrentUser.Stats.QuizScores) != 0 {
		t.Fatalf("zero-question quiz should be rejected")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: -1, TotalQuestions: 2})
	if len(snap.CurrentUser.Stats.QuizScores) != 0 {
		t.Fatalf("negative score should be rejected")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: 3, TotalQuestions: 2})
	if len(snap.CurrentUser.Stats.QuizScores) != 0 {
		t.Fatalf("score above total should be rejected")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: 1, TotalQuestions: 2})
	result := snap.CurrentUser.Stats.QuizScores["proj-1"]
	if result.Score != 1 || result.TotalQuestions != 2 {
		t.Fatalf("unexpected quiz result: %+v", result)
	}

	snap = store.Dispatch(app.Transition{Kind: app.ResetQuiz, ProjectID: "proj-1"})
	if _, ok := snap.CurrentUser.Stats.QuizScores["proj-1"]; ok {
		t.Fatalf("reset should clear the stored result")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: 2, TotalQuestions: 2})
	if len(snap.CurrentUser.Stats.QuizScores) != 1 {
		t.Fatalf("resubmission should overwrite, not append")
	}
	if got := snap.CurrentUser.Stats.QuizScores["proj-1"].Score; got != 2 {
		t.Fatalf("expected overwritten score 2, got %d", got)
	}
}

func TestQuizWhizAwardedOnceAcrossProjects(t *testing.T) {
	store := newTestStore(time.Now)

	snap := store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-1", Score: 2, TotalQuestions: 2})
	if !snap.CurrentUser.Badges[domain.BadgeQuizWhiz] {
		t.Fatalf("perfect score should award the badge")
	}

	snap = store.Dispatch(app.Transition{Kind: app.SubmitQuiz, ProjectID: "proj-2", Score: 1, TotalQuestions: 1})
	held := 0
	for _, kind := range snap.CurrentUser.HeldBadges() {
		if kind == domain.BadgeQuizWhiz {
			held++
		}
	}
	if held != 1 {
		t.Fatalf("expected exactly one quiz badge, got %d", held)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	store := newTestStore(time.Now)

	snap := store.Snapshot()
	snap.CurrentUser.Stats.CompletedSegmentIDs["seg-1a"] = struct{}{}
	snap.CurrentUser.Badges[domain.BadgeOnFire] = true

	fresh := store.Snapshot()
	if len(fresh.CurrentUser.Stats.CompletedSegmentIDs) != 0 {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
	if fresh.CurrentUser.Badges[domain.BadgeOnFire] {
		t.Fatalf("mutating snapshot badges leaked into the store")
	}
}

func TestSnapshotJSONListsCompletedSegments(t *testing.T) {
	store := newTestStore(time.Now)

	snap := store.Dispatch(completeSegment("proj-1", "seg-1a"))
	data, err := json.Marshal(snap.CurrentUser)
	if err != nil {
		t.Fatalf("marshal snapshot user: %v", err)
	}
	if !strings.Contains(string(data), `"completedSegmentIds":["seg-1a"]`) {
		t.Fatalf("serialized snapshot should name the completed segment, got %s", data)
	}
}

func TestLeaderboardRanksAreContiguous(t *testing.T) {
	store := newTestStore(time.Now)

	store.Dispatch(completeSegment("proj-1", "seg-1a"))
	snap := store.Dispatch(app.Transition{Kind: app.UpdateLeaderboard})

	if len(snap.Leaderboard) != 3 { // roster of 2 plus the learner
		t.Fatalf("expected 3 entries, got %d", len(snap.Leaderboard))
	}
	for i, entry := range snap.Leaderboard {
		if entry.Rank != i+1 {
			t.Fatalf("rank at index %d is %d", i, entry.Rank)
		}
		if i > 0 && snap.Leaderboard[i-1].Points < entry.Points {
			t.Fatalf("leaderboard not sorted by points")
		}
	}
}

func TestRefreshPolicyGate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	marks := memory.NewRefreshMarks()
	policy := app.NewRefreshPolicyWithClock(marks, 24*time.Hour, clock)
	store := newTestStore(clock)
	ctx := context.Background()

	// No mark recorded yet: refresh runs.
	if _, refreshed := store.RefreshLeaderboard(ctx, policy); !refreshed {
		t.Fatalf("expected initial refresh")
	}

	// One hour later: still fresh, skipped.
	now = now.Add(time.Hour)
	if _, refreshed := store.RefreshLeaderboard(ctx, policy); refreshed {
		t.Fatalf("expected refresh to be skipped at 1h")
	}

	// Twenty-five hours after the mark: stale, refresh runs again.
	now = now.Add(24 * time.Hour)
	if _, refreshed := store.RefreshLeaderboard(ctx, policy); !refreshed {
		t.Fatalf("expected refresh at 25h")
	}
}

func newTestStore(clock func() time.Time) *app.ProgressStore {
	return app.NewProgressStoreWithClock(testCatalog(), testUser(), clock)
}

func completeSegment(projectID, segmentID string) app.Transition {
	return app.Transition{Kind: app.CompleteSegment, ProjectID: projectID, SegmentID: segmentID}
}

func projectProgress(t *testing.T, snap app.Snapshot, projectID string) app.ProjectProgress {
	t.Helper()
	for _, p := range snap.Projects {
		if p.ID == projectID {
			return p
		}
	}
	t.Fatalf("project %s not in snapshot", projectID)
	return app.ProjectProgress{}
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Projects: []domain.Project{
			{ID: "proj-1", Title: "First Project", TotalSegments: 2},
			{ID: "proj-2", Title: "Second Project", TotalSegments: 1},
		},
		Segments: []domain.Segment{
			{ID: "seg-1a", ProjectID: "proj-1", Title: "Part A", Description: "Build part A"},
			{ID: "seg-1b", ProjectID: "proj-1", Title: "Part B", Description: "Build part B"},
			{ID: "seg-2a", ProjectID: "proj-2", Title: "Only Part", Description: "Build it"},
		},
		Quizzes: []domain.Quiz{
			{
				ProjectID: "proj-1",
				Questions: []domain.Question{
					{ID: "q1", Prompt: "Pick right", Options: []string{"wrong", "right"}, CorrectAnswer: "right"},
					{ID: "q2", Prompt: "Pick left", Options: []string{"left", "up"}, CorrectAnswer: "left"},
					{ID: "q3", Prompt: "Pick down", Options: []string{"down", "up"}, CorrectAnswer: "down"},
				},
			},
		},
		Roster: []domain.LeaderboardEntry{
			{Name: "Maya Chen", Points: 480},
			{Name: "Noah Kim", Points: 5},
		},
	}
}

func testUser() domain.User {
	return domain.User{ID: "u1", DisplayName: "Alex Doe"}
}
