package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", Validation("Folder name is required"), http.StatusBadRequest, "Folder name is required"},
		{"conflict", ErrEmailTaken, http.StatusBadRequest, "User already exists"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", ErrEntryNotFound, http.StatusNotFound, "File not found"},
		{"blob missing", ErrBlobMissing, http.StatusNotFound, "File not found on disk"},
		{"too large", ErrTooLarge, http.StatusRequestEntityTooLarge, "File exceeds the upload size limit"},
		{"wrapped", fmt.Errorf("rename abc: %w", ErrEntryNotFound), http.StatusNotFound, "File not found"},
		{"internal", Internal(errors.New("disk on fire")), http.StatusInternalServerError, "Internal server error"},
		{"plain", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, KindOf(tc.err).Status())
			assert.Equal(t, tc.msg, Message(tc.err))
		})
	}
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}
