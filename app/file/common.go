package file

import (
	"bitwise74/filestore-api/pkg/apperr"
	"strings"
)

var errInvalidBody = apperr.Validation("Invalid request body")

// parentParam turns an optional parentId value into a pointer. Empty
// and "null" both mean the root level.
func parentParam(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}

	return &s
}
