package services

import "strings"

const (
	CategoryWork      = "Work"
	CategoryEducation = "Education"
	CategoryPersonal  = "Personal"
	CategoryGeneral   = "General"
)

var educationKeywords = []string{"coursework", "report", "assignment", "exam", "quiz"}

// Categorize derives a task category from keywords in its title.
// Rules are checked in order and the first match wins.
func Categorize(title string) string {
	title = strings.ToLower(title)

	switch {
	case strings.Contains(title, "meeting"):
		return CategoryWork
	case containsAny(title, educationKeywords):
		return CategoryEducation
	case strings.Contains(title, "shopping"):
		return CategoryPersonal
	default:
		return CategoryGeneral
	}
}

func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
