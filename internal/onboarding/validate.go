package onboarding

import "strings"

// CanAdvance reports whether the given step's required fields are filled.
// Unknown steps never advance.
func CanAdvance(step int, f Form) bool {
	switch step {
	case 1:
		return f.Name != "" && f.Email != ""
	case 2:
		return f.Niche.Valid()
	case 3:
		return len(f.Goals) > 0 || strings.TrimSpace(f.CustomGoal) != ""
	case 4:
		return f.Style.Valid() && f.Level.Valid()
	default:
		return false
	}
}

// CanSubmit applies the final step's rule.
func CanSubmit(f Form) bool {
	return CanAdvance(Steps, f)
}
