package validators

import (
	"bitwise74/filestore-api/pkg/apperr"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNoFile = apperr.Validation("No file provided")

// FileValidator checks an uploaded multipart file against the size
// limit and resolves its content type. The header's type is trusted
// unless it's missing or generic, in which case the content is sniffed.
// The returned file is positioned at the start.
func FileValidator(fh *multipart.FileHeader, maxSize int64) (multipart.File, string, error) {
	if fh == nil {
		return nil, "", ErrNoFile
	}

	if err := NameValidator(fh.Filename); err != nil {
		return nil, "", err
	}

	if maxSize > 0 && fh.Size > maxSize {
		return nil, "", apperr.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/octet-stream") {
		return f, ct, nil
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", apperr.Internal(err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", apperr.Internal(err)
	}

	return f, mime.String(), nil
}
