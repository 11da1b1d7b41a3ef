package learner

// Niche is a top-level learning track chosen once during onboarding.
type Niche string

const (
	NicheUnset           Niche = ""
	NicheTechCareer      Niche = "tech_career"
	NicheCreatorBusiness Niche = "creator_business"
)

// Niches lists the selectable niches in display order.
var Niches = []Niche{NicheTechCareer, NicheCreatorBusiness}

// ParseNiche maps a wire value to a Niche; unknown values are unset.
func ParseNiche(s string) Niche {
	for _, n := range Niches {
		if string(n) == s {
			return n
		}
	}
	return NicheUnset
}

func (n Niche) Valid() bool { return ParseNiche(string(n)) != NicheUnset }

// Name is the display name of the niche.
func (n Niche) Name() string {
	switch n {
	case NicheTechCareer:
		return "Tech Career Acceleration"
	case NicheCreatorBusiness:
		return "Creator Business & Entrepreneurship"
	}
	return ""
}

// Description is the one-line blurb shown next to the niche.
func (n Niche) Description() string {
	switch n {
	case NicheTechCareer:
		return "Coding, AI, Data Science, Cloud Computing"
	case NicheCreatorBusiness:
		return "Building and monetizing creative businesses"
	}
	return ""
}

// LearningStyle is the learner's preferred way of taking in material.
type LearningStyle string

const (
	StyleUnset          LearningStyle = ""
	StyleVisual         LearningStyle = "visual"
	StyleAuditory       LearningStyle = "auditory"
	StyleKinesthetic    LearningStyle = "kinesthetic"
	StyleReadingWriting LearningStyle = "reading_writing"
)

// LearningStyles lists the selectable styles in display order.
var LearningStyles = []LearningStyle{StyleVisual, StyleAuditory, StyleKinesthetic, StyleReadingWriting}

// ParseLearningStyle maps a wire value to a LearningStyle; unknown values are unset.
func ParseLearningStyle(s string) LearningStyle {
	for _, st := range LearningStyles {
		if string(st) == s {
			return st
		}
	}
	return StyleUnset
}

func (s LearningStyle) Valid() bool { return ParseLearningStyle(string(s)) != StyleUnset }

func (s LearningStyle) Name() string {
	switch s {
	case StyleVisual:
		return "Visual"
	case StyleAuditory:
		return "Auditory"
	case StyleKinesthetic:
		return "Kinesthetic"
	case StyleReadingWriting:
		return "Reading/Writing"
	}
	return ""
}

func (s LearningStyle) Description() string {
	switch s {
	case StyleVisual:
		return "Learn through images, diagrams, and visual representations"
	case StyleAuditory:
		return "Learn through listening and verbal instruction"
	case StyleKinesthetic:
		return "Learn through hands-on activities and movement"
	case StyleReadingWriting:
		return "Learn through reading and writing activities"
	}
	return ""
}

// ExperienceLevel is the learner's self-reported level in the niche.
type ExperienceLevel string

const (
	LevelUnset        ExperienceLevel = ""
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// ExperienceLevels lists the selectable levels in display order.
var ExperienceLevels = []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseExperienceLevel maps a wire value to an ExperienceLevel; unknown values are unset.
func ParseExperienceLevel(s string) ExperienceLevel {
	for _, l := range ExperienceLevels {
		if string(l) == s {
			return l
		}
	}
	return LevelUnset
}

func (l ExperienceLevel) Valid() bool { return ParseExperienceLevel(string(l)) != LevelUnset }

func (l ExperienceLevel) Name() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	}
	return ""
}

func (l ExperienceLevel) Description() string {
	switch l {
	case LevelBeginner:
		return "New to this field"
	case LevelIntermediate:
		return "Some experience and knowledge"
	case LevelAdvanced:
		return "Experienced and looking to specialize"
	}
	return ""
}

// WeeklyMinuteOptions are the selectable weekly time budgets.
var WeeklyMinuteOptions = []int{120, 300, 480, 600, 900}

// DefaultWeeklyMinutes is preselected in the wizard.
const DefaultWeeklyMinutes = 300

// ValidWeeklyMinutes reports whether m is one of WeeklyMinuteOptions.
func ValidWeeklyMinutes(m int) bool {
	for _, o := range WeeklyMinuteOptions {
		if o == m {
			return true
		}
	}
	return false
}
