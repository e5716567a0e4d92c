package app

import (
	"learnplay/internal/domain"
)

// ScoreQuiz counts questions whose recorded answer matches the correct one.
// Unanswered questions count as incorrect.
func ScoreQuiz(quiz domain.Quiz, answers map[string]string) (score, total int) {
	total = len(quiz.Questions)
	for _, q := range quiz.Questions {
		if answers[q.ID] == q.CorrectAnswer {
			score++
		}
	}
	return score, total
}

// AttemptPhase is the per-question state of a quiz attempt.
type AttemptPhase int

const (
	// PhaseAnswering collects a selection for the current question.
	PhaseAnswering AttemptPhase = iota
	// PhaseSubmitted means the current question is graded and the attempt
	// awaits an advance to the next question.
	PhaseSubmitted
	// PhaseFinished means every question has been graded and the result
	// has been dispatched.
	PhaseFinished
)

// Attempt walks one learner through a project quiz, question by question.
// Finishing dispatches exactly one quiz submission to the store; resetting
// starts the attempt over and allows a fresh submission that overwrites
// the previous result.
type Attempt struct {
	quiz       domain.Quiz
	index      int
	phase      AttemptPhase
	answers    map[string]string
	finish     func(score, total int)
	dispatched bool
}

// NewAttempt starts a quiz attempt for a project. The finished attempt
// dispatches SubmitQuiz through the store.
func (s *ProgressStore) NewAttempt(projectID string) (*Attempt, error) {
	quiz, ok := s.catalog.Quiz(projectID)
	if !ok || len(quiz.Questions) == 0 {
		return nil, domain.ErrQuizNotFound
	}
	return &Attempt{
		quiz:    quiz,
		answers: make(map[string]string),
		finish: func(score, total int) {
			s.Dispatch(Transition{
				Kind:           SubmitQuiz,
				ProjectID:      projectID,
				Score:          score,
				TotalQuestions: total,
			})
		},
	}, nil
}

// Phase returns the current attempt phase.
func (a *Attempt) Phase() AttemptPhase { return a.phase }

// QuestionIndex returns the zero-based index of the current question.
func (a *Attempt) QuestionIndex() int { return a.index }

// Question returns the current question.
func (a *Attempt) Question() domain.Question {
	return a.quiz.Questions[a.index]
}

// Selected returns the answer recorded for the current question, if any.
func (a *Attempt) Selected() (string, bool) {
	answer, ok := a.answers[a.quiz.Questions[a.index].ID]
	return answer, ok
}

// Select records an answer for the current question. Rejected once the
// question has been submitted or the attempt is finished.
func (a *Attempt) Select(option string) bool {
	if a.phase != PhaseAnswering || option == "" {
		return false
	}
	a.answers[a.quiz.Questions[a.index].ID] = option
	return true
}

// Submit grades the current question. Rejected when nothing is selected.
func (a *Attempt) Submit() bool {
	if a.phase != PhaseAnswering {
		return false
	}
	if _, ok := a.answers[a.quiz.Questions[a.index].ID]; !ok {
		return false
	}
	a.phase = PhaseSubmitted
	return true
}

// Correct reports whether the submitted answer for the current question
// matches the correct one. Only meaningful after Submit.
func (a *Attempt) Correct() bool {
	q := a.quiz.Questions[a.index]
	return a.answers[q.ID] == q.CorrectAnswer
}

// Next advances past a submitted question. On the last question the
// attempt finishes and dispatches its result exactly once.
func (a *Attempt) Next() bool {
	if a.phase != PhaseSubmitted {
		return false
	}
	if a.index+1 < len(a.quiz.Questions) {
		a.index++
		a.phase = PhaseAnswering
		return true
	}
	a.phase = PhaseFinished
	if !a.dispatched {
		a.dispatched = true
		score, total := a.Score()
		a.finish(score, total)
	}
	return true
}

// Score computes the attempt's running score over all questions.
func (a *Attempt) Score() (score, total int) {
	return ScoreQuiz(a.quiz, a.answers)
}

// Reset returns the attempt to the first question with all selections
// cleared. A subsequent finish dispatches again, overwriting the stored
// result.
func (a *Attempt) Reset() {
	a.index = 0
	a.phase = PhaseAnswering
	a.answers = make(map[string]string)
	a.dispatched = false
}
