package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Roles a user may self-assign at registration. admin and moderator are
// granted out-of-band.
func IsValidSignupRole(role string) bool {
	switch role {
	case "user", "business_owner":
		return true
	}
	return false
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}
