package learner

import (
	"encoding/json"
	"testing"
)

func TestParseEnums(t *testing.T) {
	if got := ParseNiche("tech_career"); got != NicheTechCareer {
		t.Errorf("ParseNiche(tech_career) = %q", got)
	}
	if got := ParseNiche("certification_prep"); got != NicheUnset {
		t.Errorf("unknown niche should be unset, got %q", got)
	}
	if got := ParseLearningStyle("reading_writing"); got != StyleReadingWriting {
		t.Errorf("ParseLearningStyle = %q", got)
	}
	if got := ParseExperienceLevel("expert"); got != LevelUnset {
		t.Errorf("unknown level should be unset, got %q", got)
	}
	if NicheUnset.Valid() || StyleUnset.Valid() || LevelUnset.Valid() {
		t.Error("unset values must not be valid")
	}
}

func TestValidWeeklyMinutes(t *testing.T) {
	for _, m := range []int{120, 300, 480, 600, 900} {
		if !ValidWeeklyMinutes(m) {
			t.Errorf("ValidWeeklyMinutes(%d) = false", m)
		}
	}
	for _, m := range []int{0, 60, 301} {
		if ValidWeeklyMinutes(m) {
			t.Errorf("ValidWeeklyMinutes(%d) = true", m)
		}
	}
}

func TestGoalsReturnsCopy(t *testing.T) {
	g := Goals(NicheTechCareer)
	g[0] = "mutated"
	if Goals(NicheTechCareer)[0] != "Learn Python Programming" {
		t.Error("Goals must not expose the catalog slice")
	}
	if !IsCatalogGoal(NicheCreatorBusiness, "Launch Online Course") {
		t.Error("expected creator goal to be in catalog")
	}
	if IsCatalogGoal(NicheTechCareer, "Launch Online Course") {
		t.Error("creator goal should not be in tech catalog")
	}
}

func TestConceptsFallback(t *testing.T) {
	got := Concepts(NicheUnset)
	want := Concepts(NicheTechCareer)
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Concepts(unset) = %v, want tech list %v", got, want)
	}
	if len(Concepts(NicheCreatorBusiness)) != 5 {
		t.Error("expected 5 creator concepts")
	}
}

func TestSessionRecordDecode(t *testing.T) {
	raw := `{"id":7,"learner_id":3,"session_start":"2024-05-01T10:30:00.123456",
		"session_end":null,"duration_minutes":null,"completion_rate":0.5,"clicks":4}`

	var s SessionRecord
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.DurationMinutes != nil {
		t.Error("null duration should stay nil")
	}
	if s.Minutes() != 0 {
		t.Errorf("Minutes() = %d, want 0", s.Minutes())
	}
	if s.Completion() != 0.5 {
		t.Errorf("Completion() = %v, want 0.5", s.Completion())
	}
	start, ok := s.StartedAt()
	if !ok {
		t.Fatal("expected session_start to parse")
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("StartedAt = %v", start)
	}
}

func TestStartedAt_Missing(t *testing.T) {
	if _, ok := (SessionRecord{}).StartedAt(); ok {
		t.Error("expected ok=false for empty start")
	}
	if _, ok := (SessionRecord{SessionStart: "yesterday"}).StartedAt(); ok {
		t.Error("expected ok=false for malformed start")
	}
}
