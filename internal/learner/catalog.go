package learner

var goalsByNiche = map[Niche][]string{
	NicheTechCareer: {
		"Learn Python Programming",
		"Master JavaScript & React",
		"Get AWS Certification",
		"Learn Data Science & Analytics",
		"Master DevOps & CI/CD",
		"Learn AI/ML Engineering",
	},
	NicheCreatorBusiness: {
		"Build Personal Brand",
		"Master Content Marketing",
		"Grow Social Media Following",
		"Launch Online Course",
		"Start Newsletter Business",
		"Learn Email Marketing",
	},
}

var conceptsByNiche = map[Niche][]string{
	NicheTechCareer: {
		"Python Functions",
		"Data Structures",
		"API Design",
		"Testing Strategies",
		"Version Control",
	},
	NicheCreatorBusiness: {
		"Content Marketing Strategy",
		"Personal Branding",
		"Social Media Growth",
		"Email Marketing",
		"Monetization Strategies",
	},
}

// Goals returns the suggested goals for a niche. The slice is a copy.
func Goals(n Niche) []string {
	return append([]string(nil), goalsByNiche[n]...)
}

// IsCatalogGoal reports whether goal is one of the niche's suggestions.
func IsCatalogGoal(n Niche, goal string) bool {
	for _, g := range goalsByNiche[n] {
		if g == goal {
			return true
		}
	}
	return false
}

// Concepts returns the session concepts for a niche. Unknown niches fall
// back to the tech career list.
func Concepts(n Niche) []string {
	list, ok := conceptsByNiche[n]
	if !ok {
		list = conceptsByNiche[NicheTechCareer]
	}
	return append([]string(nil), list...)
}
