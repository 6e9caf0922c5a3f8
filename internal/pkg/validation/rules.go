package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// National identification number - 13 digits
	NationalIDPattern = `^\d{13}$`

	// Phone number - optional leading +, 6 to 15 digits
	PhonePattern = `^\+?\d{6,15}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	NationalID *regexp.Regexp
	Phone      *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	NationalID: regexp.MustCompile(NationalIDPattern),
	Phone:      regexp.MustCompile(PhonePattern),
}

// Allowed content types for uploaded admission documents
var documentContentTypes = []*regexp.Regexp{
	regexp.MustCompile(`^application/pdf$`),
	regexp.MustCompile(`^image/.*$`),
}

// IsAllowedDocumentType reports whether the content type is accepted for an
// admission document upload (pdf or any image type).
func IsAllowedDocumentType(contentType string) bool {
	for _, p := range documentContentTypes {
		if p.MatchString(contentType) {
			return true
		}
	}
	return false
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidNationalID reports whether the value is a well-formed national
// identification number.
func IsValidNationalID(value string) bool {
	return CompiledPatterns.NationalID.MatchString(value)
}

// IsValidPhone reports whether the value is a well-formed phone number.
func IsValidPhone(value string) bool {
	return CompiledPatterns.Phone.MatchString(value)
}

// IsValidPassword reports whether the password meets the minimum length.
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}
