package validators

import (
	"bitwise74/filestore-api/pkg/apperr"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 255

var (
	ErrNameEmpty   = apperr.Validation("Name is required")
	ErrNameTooLong = apperr.Validation("Name is too long")
	ErrNameInvalid = apperr.Validation("Name contains invalid characters")
)

// NameValidator checks a file or folder name. Path separators are
// rejected because names are used to build blob keys.
func NameValidator(n string) error {
	if strings.TrimSpace(n) == "" {
		return ErrNameEmpty
	}

	if utf8.RuneCountInString(n) > maxNameLength {
		return ErrNameTooLong
	}

	if !utf8.ValidString(n) || n == "." || n == ".." {
		return ErrNameInvalid
	}

	for _, r := range n {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return ErrNameInvalid
		}
	}

	return nil
}
