package api

import (
	"encoding/json"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/learner"
)

// CreateAccountRequest is the body of POST /users.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateLearnerRequest is the body of POST /learners.
type CreateLearnerRequest struct {
	UserID                 int64                   `json:"user_id"`
	TargetNiche            learner.Niche           `json:"target_niche"`
	LearningGoals          []string                `json:"learning_goals"`
	PreferredLearningStyle learner.LearningStyle   `json:"preferred_learning_style"`
	ExperienceLevel        learner.ExperienceLevel `json:"experience_level"`
	TimeAvailability       int                     `json:"time_availability"`
}

// GenerateRequest is the body of POST /learners/{id}/generate-content.
type GenerateRequest struct {
	Concept      string       `json:"concept"`
	ContentType  content.Type `json:"content_type"`
	ExerciseType string       `json:"exercise_type,omitempty"`
}

// GeneratedContent is the response of the content generator. The payload
// is kept raw; use content.DecodeLesson / DecodeExercise to read it.
type GeneratedContent struct {
	Concept          string          `json:"concept"`
	ContentType      content.Type    `json:"content_type"`
	GeneratedContent json.RawMessage `json:"generated_content"`
}

// FeedbackRequest is the body of POST /learners/{id}/feedback.
type FeedbackRequest struct {
	LearnerAnswer string `json:"learner_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Concept       string `json:"concept"`
}

type feedbackResponse struct {
	Feedback string `json:"feedback"`
}

type endSessionRequest struct {
	CompletionRate float64 `json:"completion_rate"`
}

type knowledgeGapsResponse struct {
	KnowledgeGaps []string `json:"knowledge_gaps"`
}

type errorResponse struct {
	Error string `json:"error"`
}
