package site

// Default returns the canonical declaration of the resume site. Each call
// builds a fresh value, so callers never share nodes.
func Default() *SiteConfig {
	return &SiteConfig{
		Title: "Josh Deeden",
		Social: Social{
			PlatformGitHub:   "https://github.com/gangster",
			PlatformLinkedIn: "https://www.linkedin.com/in/jdeeden/",
		},
		Sidebar: []NavNode{
			Link("Resume", "/resume"),
			Group("Challenges",
				Link("Challenges Overview", "/challenges"),
				Group("Google Forms Killer",
					Link("The Challenge", "/challenges/google-forms-killer/challenge"),
					Link("Assumptions", "/challenges/google-forms-killer/assumptions"),
					Link("Product Requirements", "/challenges/google-forms-killer/product-requirements"),
					Link("Technical Requirements", "/challenges/google-forms-killer/technical-requirements"),
					Link("Edge Cases", "/challenges/google-forms-killer/edge-cases"),
					Link("Data Model", "/challenges/google-forms-killer/data-model"),
					Link("Future Enhancements?", "/challenges/google-forms-killer/future"),
				),
				Group("Function Refactor",
					Link("The Challenge", "/challenges/function-refactor/challenge"),
					Link("The Code to Refactor", "/challenges/function-refactor/code"),
					Link("Solution Overview", "/challenges/function-refactor/solution"),
					Link("Refactored Code", "/challenges/function-refactor/refactored"),
					Link("Unit Tests", "/challenges/function-refactor/tests"),
				),
			),
		},
	}
}
