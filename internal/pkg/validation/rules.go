package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern matches the addresses accepted for verification links
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// EnrollmentNumberLength is fixed by the institution
	EnrollmentNumberLength = 9
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidEmail reports whether the address has an acceptable shape
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidEnrollmentNumber reports whether the identifier has the
// institutional fixed length
func IsValidEnrollmentNumber(enrollmentNumber string) bool {
	return len(enrollmentNumber) == EnrollmentNumberLength
}
