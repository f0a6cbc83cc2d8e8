package validators

import "strings"

const minPasswordLength = 8

// ValidateCredentials checks a sign-in/sign-up email and password pair.
// The email check is deliberately shallow (presence of "@" with something on
// both sides); the authoritative check is the verification mail the backend
// sends on sign-up.
func ValidateCredentials(email, password string) error {
	if !looksLikeEmail(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	return nil
}

func looksLikeEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
