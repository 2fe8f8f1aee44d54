package validators

import "bitwise74/filestore-api/pkg/apperr"

const (
	minPasswordLength = 6
	maxPasswordLength = 255
)

var (
	ErrPasswordTooShort = apperr.Validation("Password must be at least 6 characters")
	ErrPasswordTooLong  = apperr.Validation("Password must be at most 255 characters")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrCredentialsEmpty
	}

	if len(p) < minPasswordLength {
		return ErrPasswordTooShort
	}

	if len(p) > maxPasswordLength {
		return ErrPasswordTooLong
	}

	return nil
}
