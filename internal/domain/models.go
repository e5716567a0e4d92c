package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Segment is one discrete unit of instructional content within a project.
// Immutable after catalog load; its project membership never changes.
type Segment struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	Description  string `json:"description"`
}

// Project groups an ordered set of segments. TotalSegments is fixed at
// catalog load; completion is always derived from the user's progress,
// never stored on the project itself.
type Project struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageRef      string `json:"imageRef"`
	TotalSegments int    `json:"totalSegments"`
}

// Question is a single multiple-choice question. CorrectAnswer must be
// one of Options; Catalog.Validate enforces that.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz is the ordered question set attached to a project.
type Quiz struct {
	ProjectID string     `json:"projectId"`
	Questions []Question `json:"questions"`
}

// QuizResult is the stored outcome of the most recent quiz submission
// for one project. Resubmitting overwrites, never appends.
type QuizResult struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	ProjectName    string `json:"projectName"`
}

// Stats is the per-user progress overlay on top of the static catalog.
// The counters are convenience values kept in lockstep with
// CompletedSegmentIDs by the progress store; the derivations in
// progress.go are the authoritative source.
type Stats struct {
	ProjectsCompleted   int                   `json:"projectsCompleted"`
	SegmentsCompleted   int                   `json:"segmentsCompleted"`
	CurrentStreak       int                   `json:"currentStreak"`
	LastCompletedAt     time.Time             `json:"lastCompletedAt"`
	CompletedSegmentIDs map[string]struct{}   `json:"-"`
	QuizScores          map[string]QuizResult `json:"quizScores"`
}

// MarshalJSON serializes the completed-segment set as a sorted id list so
// clients can tell which segments are done, not just how many.
func (s Stats) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s.CompletedSegmentIDs))
	for id := range s.CompletedSegmentIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type alias Stats
	return json.Marshal(struct {
		alias
		CompletedSegmentIDs []string `json:"completedSegmentIds"`
	}{alias(s), ids})
}

// UnmarshalJSON restores the set form from the serialized id list.
func (s *Stats) UnmarshalJSON(data []byte) error {
	type alias Stats
	var aux struct {
		alias
		CompletedSegmentIDs []string `json:"completedSegmentIds"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Stats(aux.alias)
	s.CompletedSegmentIDs = make(map[string]struct{}, len(aux.CompletedSegmentIDs))
	for _, id := range aux.CompletedSegmentIDs {
		s.CompletedSegmentIDs[id] = struct{}{}
	}
	return nil
}

// User is the single local learner. Mutated only through the progress
// store's transition dispatch.
type User struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"displayName"`
	AvatarRef   string             `json:"avatarRef"`
	Badges      map[BadgeKind]bool `json:"badges"`
	Stats       Stats              `json:"stats"`
}

// LeaderboardEntry is one row of the wholesale-recomputed ranking.
// Ranks are 1-based, unique and contiguous.
type LeaderboardEntry struct {
	Rank   int         `json:"rank"`
	Name   string      `json:"name"`
	Points int         `json:"points"`
	Badges []BadgeKind `json:"badges"`
}

// Catalog is the static seed data: projects, their segments and quizzes,
// plus the leaderboard roster of other known learners. The core never
// mutates it after load.
type Catalog struct {
	Projects []Project          `json:"projects"`
	Segments []Segment          `json:"segments"`
	Quizzes  []Quiz             `json:"quizzes"`
	Roster   []LeaderboardEntry `json:"roster"`
}

// Project returns the project with the given id.
func (c Catalog) Project(projectID string) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == projectID {
			return p, true
		}
	}
	return Project{}, false
}

// Segment returns the segment with the given id scoped to a project.
func (c Catalog) Segment(projectID, segmentID string) (Segment, bool) {
	for _, s := range c.Segments {
		if s.ID == segmentID && s.ProjectID == projectID {
			return s, true
		}
	}
	return Segment{}, false
}

// SegmentsOf returns all segments belonging to a project, in catalog order.
func (c Catalog) SegmentsOf(projectID string) []Segment {
	var out []Segment
	for _, s := range c.Segments {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out
}

// Quiz returns the quiz attached to a project.
func (c Catalog) Quiz(projectID string) (Quiz, bool) {
	for _, q := range c.Quizzes {
		if q.ProjectID == projectID {
			return q, true
		}
	}
	return Quiz{}, false
}

// Validate checks catalog-level invariants: segment ownership, declared
// segment counts, and that every question's correct answer is one of
// its options.
func (c Catalog) Validate() error {
	for _, s := range c.Segments {
		if _, ok := c.Project(s.ProjectID); !ok {
			return ErrUnknownProject
		}
	}
	for _, p := range c.Projects {
		if len(c.SegmentsOf(p.ID)) != p.TotalSegments {
			return ErrSegmentCountMismatch
		}
	}
	for _, q := range c.Quizzes {
		if _, ok := c.Project(q.ProjectID); !ok {
			return ErrUnknownProject
		}
		for _, question := range q.Questions {
			if !contains(question.Options, question.CorrectAnswer) {
				return ErrAnswerNotAnOption
			}
		}
	}
	return nil
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
