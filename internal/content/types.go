package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Type is the kind of generated content requested from the backend.
type Type string

const (
	TypeLesson   Type = "lesson"
	TypeExercise Type = "exercise"
)

// ExerciseMultipleChoice is the only exercise format the client renders.
const ExerciseMultipleChoice = "multiple_choice"

// Lesson is the decoded payload of a generated lesson.
type Lesson struct {
	Title              string   `json:"title"`
	LearningObjectives []string `json:"learning_objectives,omitempty"`
	Content            string   `json:"content"`
	Examples           []string `json:"examples,omitempty"`
	KeyTakeaways       []string `json:"key_takeaways,omitempty"`
	NextSteps          string   `json:"next_steps,omitempty"`
}

// Exercise is the decoded payload of a generated multiple-choice exercise.
// Options are rendered as "A) ..." and the answer is the option's letter.
type Exercise struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// OptionKey returns the answer key for an option line, i.e. its first
// character ("A) Foo" -> "A").
func OptionKey(option string) string {
	option = strings.TrimSpace(option)
	if option == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(option)
	if r == utf8.RuneError {
		return ""
	}
	return option[:size]
}

// IsCorrect compares a learner answer with the expected one, ignoring case
// and surrounding whitespace.
func (e *Exercise) IsCorrect(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(e.CorrectAnswer))
}

// InvalidError reports a generated payload that does not match its schema.
type InvalidError struct {
	Type    Type
	Payload json.RawMessage
	Err     error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Type, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }
