package hint

import (
	"fmt"
	"strings"
)

func hintPrompt(hc HintContext) string {
	return fmt.Sprintf(`You are an expert coding tutor. Analyze the learner's solution attempt and provide a precise, targeted hint.

Project Segment: %s
Learner's Solution Attempt: %s
Learner Understanding: %s
Hint Request: %s

CRITICAL: Generate a hint that is EXACTLY 15-20 words. Count your words carefully. The hint must directly address what's wrong, missing, or needs improvement in their SPECIFIC solution attempt. Be actionable and specific.

Respond with a JSON object:
{"hint": "exactly 15-20 words addressing their specific solution", "explanation": "brief 2-3 sentence explanation"}`,
		hc.SegmentDescription, hc.LearnerActions, hc.LearnerUnderstanding, hc.HintRequest)
}

func proposalPrompt(interests string) string {
	return fmt.Sprintf(`You are an AI assistant designed to suggest project ideas to new users based on their interests.

You will generate a project name, project description, project segments, and required skills based on the user's interests.

User Interests: %s

Respond with a JSON object:
{"projectName": "...", "projectDescription": "...", "segments": ["..."], "requiredSkills": ["..."], "progress": "a short, one-sentence summary of the project"}`, interests)
}

func suggestionPrompt(in SuggestionInput) string {
	return fmt.Sprintf(`You are an expert learning assistant that specializes in suggesting project segments to learners.

You will consider the learner's existing skills, learning preferences, the overall project description, the current segment they are on (if any), and their past attempts to suggest the next best segments for them to work on.

Learner Skills: %s
Learner Preferences: %s
Project Description: %s
Current Segment: %s
Past Attempts: %s

Based on this information, suggest project segments that align with the learner's skill level and preferences, so they can focus on areas where they need the most improvement and stay engaged.

Respond with a JSON object:
{"suggestedSegments": ["..."], "explanation": "why these segments were suggested"}`,
		strings.Join(in.LearnerSkills, ", "), in.LearnerPreferences, in.ProjectDescription,
		in.CurrentSegment, strings.Join(in.PastAttempts, ", "))
}

func adaptationPrompt(in AdaptationInput) string {
	return fmt.Sprintf(`You are an expert learning assistant that specializes in adapting project segments for learners based on their performance, skills, preferences, and feedback.

You will consider the learner's existing skills, learning preferences, the overall project description, the current segment they are on, their past attempts, a list of suggested segments, and any feedback received to adapt the segments for them.

Learner Skills: %s
Learner Preferences: %s
Project Description: %s
Current Segment: %s
Past Attempts: %s
Segment Suggestions: %s
Feedback: %s

Based on this information, adapt the suggested project segments to best suit the learner's current needs and abilities. Explain why you have adapted the segments in this way.

Respond with a JSON object:
{"adaptedSegments": ["..."], "explanation": "why the segments were adapted this way", "progress": "a one-sentence summary of the adaptation"}`,
		strings.Join(in.LearnerSkills, ", "), in.LearnerPreferences, in.ProjectDescription,
		in.CurrentSegment, strings.Join(in.PastAttempts, ", "),
		strings.Join(in.SegmentSuggestions, ", "), in.Feedback)
}

func summaryPrompt(in SummaryInput) string {
	return fmt.Sprintf(`You are an AI assistant designed to provide concise summaries of project progress and key learnings.

Project Name: %s
Project Description: %s
Completed Segments: %s
Key Learnings: %s

Please generate a concise summary of the project's progress and key learnings, highlighting accomplishments.
The summary should be no more than three sentences.

Respond with a JSON object:
{"summary": "...", "progress": "a one sentence summary of the progress"}`,
		in.ProjectName, in.ProjectDescription, strings.Join(in.CompletedSegments, ", "), in.KeyLearnings)
}
