// Package blob stores file bytes. The metadata describing them lives
// in the database, a blob only knows its storage key.
package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Most filesystems cap a single path element at 255 bytes
const maxKeyBytes = 255

var ErrBlobNotFound = errors.New("blob not found")

type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

type Store interface {
	// Put writes r under a key derived from id and name and returns
	// that key. size may be -1 when unknown.
	Put(ctx context.Context, id, name string, r io.Reader, size int64) (string, error)
	// Get returns ErrBlobNotFound when nothing is stored under key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op for keys that don't exist
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
}

// Key builds the storage key for an entry. The id prefix keeps keys
// unique, the name is only there to make the storage browsable.
func Key(id, name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			return '_'
		default:
			return r
		}
	}, name)

	key := id + "-" + clean
	if len(key) <= maxKeyBytes {
		return key
	}

	// Trim on a rune boundary, the id prefix alone keeps keys unique
	cut := maxKeyBytes
	for cut > 0 && !utf8.RuneStart(key[cut]) {
		cut--
	}

	return key[:cut]
}
