// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"bitwise74/filestore-api/pkg/apperr"
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrCredentialsEmpty = apperr.Validation("Email and password required")
	ErrEmailInvalid     = apperr.Validation("Invalid email format")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrCredentialsEmpty
	}

	if !emailRe.MatchString(e) {
		return ErrEmailInvalid
	}

	return nil
}
