package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Course code pattern - uppercase subject prefix plus a number, e.g. GO101
	CourseCodePattern = `^[A-Z]{2,8}[0-9]{2,4}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// IsValidCourseCode reports whether code matches the course code format.
func IsValidCourseCode(code string) bool {
	return CompiledPatterns.CourseCode.MatchString(code)
}
