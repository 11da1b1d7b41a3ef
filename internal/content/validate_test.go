package content

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeLesson_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"title": "Understanding Python Functions",
		"learning_objectives": ["Define a function", "Call it"],
		"content": "Functions group statements.",
		"examples": ["def f(): pass"],
		"key_takeaways": ["Reuse code"],
		"next_steps": "Write three functions."
	}`)

	l, err := DecodeLesson(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Title != "Understanding Python Functions" {
		t.Errorf("Title = %q", l.Title)
	}
	if len(l.LearningObjectives) != 2 {
		t.Errorf("LearningObjectives = %v, want 2 items", l.LearningObjectives)
	}
	if l.NextSteps != "Write three functions." {
		t.Errorf("NextSteps = %q", l.NextSteps)
	}
}

func TestDecodeLesson_OptionalListsMissing(t *testing.T) {
	raw := json.RawMessage(`{"title":"T","content":"body"}`)
	if _, err := DecodeLesson(raw); err != nil {
		t.Fatalf("expected minimal lesson to validate, got: %v", err)
	}
}

func TestDecodeLesson_MissingTitle(t *testing.T) {
	_, err := DecodeLesson(json.RawMessage(`{"content":"body"}`))
	var invErr *InvalidError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected *InvalidError, got %T (%v)", err, err)
	}
	if invErr.Type != TypeLesson {
		t.Errorf("Type = %q, want lesson", invErr.Type)
	}
}

func TestDecodeExercise_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "Which keyword defines a function?",
		"options": ["A) def", "B) func", "C) fn", "D) lambda"],
		"correct_answer": "A",
		"explanation": "Python uses def."
	}`)

	e, err := DecodeExercise(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Options) != 4 {
		t.Fatalf("Options = %d, want 4", len(e.Options))
	}
	if !e.IsCorrect(OptionKey(e.Options[0])) {
		t.Error("expected option A to be correct")
	}
	if e.IsCorrect(OptionKey(e.Options[1])) {
		t.Error("expected option B to be wrong")
	}
}

func TestDecodeExercise_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing correct answer", `{"question":"Q?","options":["A) x"]}`},
		{"empty question", `{"question":"","correct_answer":"A"}`},
		{"options not strings", `{"question":"Q?","correct_answer":"A","options":[1,2]}`},
		{"not json", `{"question":`},
		{"array payload", `["A"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeExercise(json.RawMessage(tt.raw))
			var invErr *InvalidError
			if !errors.As(err, &invErr) {
				t.Fatalf("expected *InvalidError, got %T (%v)", err, err)
			}
		})
	}
}

func TestOptionKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A) First", "A"},
		{"  b) padded", "b"},
		{"", ""},
		{"   ", ""},
		{"É) accent", "É"},
	}
	for _, tt := range tests {
		if got := OptionKey(tt.in); got != tt.want {
			t.Errorf("OptionKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCorrect_IgnoresCaseAndSpace(t *testing.T) {
	e := &Exercise{CorrectAnswer: "A"}
	if !e.IsCorrect(" a ") {
		t.Error("expected case-insensitive match")
	}
}
