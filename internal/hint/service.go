package hint

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	maxHintWords = 20
	minHintChars = 10
)

const (
	fallbackHint        = "Review your code and check the key concepts mentioned in the instructions carefully."
	shortHintFallback   = "Review your code carefully and check the key concepts from the instructions."
	fallbackExplanation = "Unable to generate a personalized hint at this time."
	fallbackErrContext  = "Please review the segment instructions and try again."
	defaultExplanation  = "This hint addresses specific issues in your solution attempt. Review the key concepts mentioned."
	successProgress     = "Hint generated based on your specific solution attempt."
	failureProgress     = "Hint generation encountered an error."
)

// HintContext carries everything the tutor prompt needs about the
// learner's current situation.
type HintContext struct {
	SegmentDescription   string `json:"projectSegmentDescription"`
	LearnerActions       string `json:"learnerActions"`
	LearnerUnderstanding string `json:"learnerUnderstanding"`
	HintRequest          string `json:"hintRequest"`
}

// Hint is the shaped tutor response. Hint text is at most 20 words.
type Hint struct {
	Hint        string `json:"hint"`
	Explanation string `json:"explanation"`
	Progress    string `json:"progress"`
}

// Proposal is a model-suggested project for a learner's interests.
type Proposal struct {
	ProjectName        string   `json:"projectName"`
	ProjectDescription string   `json:"projectDescription"`
	Segments           []string `json:"segments"`
	RequiredSkills     []string `json:"requiredSkills"`
	Progress           string   `json:"progress"`
}

// SuggestionInput describes a learner looking for the next segments to
// work on.
type SuggestionInput struct {
	LearnerSkills      []string
	LearnerPreferences string
	ProjectDescription string
	CurrentSegment     string
	PastAttempts       []string
}

// Suggestions is the model's ranked segment recommendation.
type Suggestions struct {
	SuggestedSegments []string `json:"suggestedSegments"`
	Explanation       string   `json:"explanation"`
}

// AdaptationInput extends a suggestion request with the suggestions to
// adapt from and any feedback on the learner.
type AdaptationInput struct {
	SuggestionInput
	SegmentSuggestions []string
	Feedback           string
}

// Adaptation is the model's difficulty-adjusted segment set.
type Adaptation struct {
	AdaptedSegments []string `json:"adaptedSegments"`
	Explanation     string   `json:"explanation"`
	Progress        string   `json:"progress"`
}

// SummaryInput describes a project whose progress should be summarized.
type SummaryInput struct {
	ProjectName        string
	ProjectDescription string
	CompletedSegments  []string
	KeyLearnings       string
}

// Summary is the model's project recap.
type Summary struct {
	Summary  string `json:"summary"`
	Progress string `json:"progress"`
}

// Service wraps a Generator with prompt templating, output shaping and
// fixed fallbacks so consumers never observe a raw model failure on the
// hint path.
type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// GenerateHint asks the model for a 15-20 word hint and shapes the result:
// over-long hints are truncated to 20 words, short-but-usable hints pass
// through, and empty or sub-10-character hints are replaced by the fixed
// fallback. Any generation failure yields the fallback pair with the error
// context folded into the explanation; there is no automatic retry.
func (s *Service) GenerateHint(ctx context.Context, hc HintContext) Hint {
	raw, err := s.gen.Generate(ctx, hintPrompt(hc))
	if err != nil {
		log.Printf("hint generation failed: %v", err)
		return Hint{
			Hint:        fallbackHint,
			Explanation: fmt.Sprintf("%s %s", fallbackExplanation, errContext(err)),
			Progress:    failureProgress,
		}
	}

	var out Hint
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		log.Printf("hint response not parseable: %v", err)
		return Hint{
			Hint:        fallbackHint,
			Explanation: fmt.Sprintf("%s %s", fallbackExplanation, errContext(err)),
			Progress:    failureProgress,
		}
	}

	out.Hint = TrimWords(out.Hint, maxHintWords)
	if len(strings.TrimSpace(out.Hint)) < minHintChars {
		out.Hint = shortHintFallback
	}
	if out.Explanation == "" {
		out.Explanation = defaultExplanation
	}
	out.Progress = successProgress
	return out
}

// ProposeProject asks the model for a project idea matching the learner's
// interests. Unlike hints there is no fallback; the caller decides how to
// surface a failure.
func (s *Service) ProposeProject(ctx context.Context, interests string) (Proposal, error) {
	raw, err := s.gen.Generate(ctx, proposalPrompt(interests))
	if err != nil {
		return Proposal{}, fmt.Errorf("propose project: %w", err)
	}
	var out Proposal
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return Proposal{}, fmt.Errorf("parse proposal: %w", err)
	}
	return out, nil
}

// SuggestSegments asks the model which segments the learner should work
// on next, given their skills, preferences and past attempts.
func (s *Service) SuggestSegments(ctx context.Context, in SuggestionInput) (Suggestions, error) {
	raw, err := s.gen.Generate(ctx, suggestionPrompt(in))
	if err != nil {
		return Suggestions{}, fmt.Errorf("suggest segments: %w", err)
	}
	var out Suggestions
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return Suggestions{}, fmt.Errorf("parse suggestions: %w", err)
	}
	return out, nil
}

// AdaptSegments asks the model to adjust suggested segments to the
// learner's current level, factoring in feedback.
func (s *Service) AdaptSegments(ctx context.Context, in AdaptationInput) (Adaptation, error) {
	raw, err := s.gen.Generate(ctx, adaptationPrompt(in))
	if err != nil {
		return Adaptation{}, fmt.Errorf("adapt segments: %w", err)
	}
	var out Adaptation
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return Adaptation{}, fmt.Errorf("parse adaptation: %w", err)
	}
	return out, nil
}

// SummarizeProject asks the model for a concise (at most three sentence)
// recap of a project's progress and key learnings.
func (s *Service) SummarizeProject(ctx context.Context, in SummaryInput) (Summary, error) {
	raw, err := s.gen.Generate(ctx, summaryPrompt(in))
	if err != nil {
		return Summary{}, fmt.Errorf("summarize project: %w", err)
	}
	var out Summary
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return Summary{}, fmt.Errorf("parse summary: %w", err)
	}
	return out, nil
}

// TrimWords truncates text to at most max whitespace-separated words.
// Shorter text passes through unchanged; there is no enforced minimum.
func TrimWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:max], " ")
}

func errContext(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallbackErrContext
	}
	return err.Error()
}

// stripFences removes a surrounding markdown code fence that some models
// wrap around JSON output.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
