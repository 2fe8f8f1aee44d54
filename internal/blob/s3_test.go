package blob

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsePutObject(t *testing.T) {
	small := strings.NewReader("hello")

	cases := []struct {
		name string
		r    io.Reader
		size int64
		want bool
	}{
		{"seekable small", small, 5, true},
		{"seekable empty", bytes.NewReader(nil), 0, true},
		{"unknown size", small, -1, false},
		{"at threshold", small, multipartThreshold, false},
		{"not seekable", io.MultiReader(small), 5, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, usePutObject(tc.r, tc.size))
		})
	}
}
