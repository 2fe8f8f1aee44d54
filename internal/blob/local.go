package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Local keeps blobs as files in a single directory
type Local struct {
	fs   afero.Fs
	root string
}

func NewLocal(fsys afero.Fs, root string) (*Local, error) {
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s, %w", root, err)
	}

	return &Local{fs: fsys, root: root}, nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.root, filepath.Base(key))
}

func (l *Local) Put(ctx context.Context, id, name string, r io.Reader, size int64) (string, error) {
	key := Key(id, name)

	f, err := l.fs.OpenFile(l.path(key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob %s: %w", key, err)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		l.fs.Remove(l.path(key))
		return "", fmt.Errorf("blob %s: %w", key, err)
	}

	return key, nil
}

func (l *Local) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := l.fs.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", key, ErrBlobNotFound)
		}

		return nil, fmt.Errorf("blob %s: %w", key, err)
	}

	return f, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	err := l.fs.Remove(l.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob %s: %w", key, err)
	}

	return nil
}

func (l *Local) List(ctx context.Context) ([]Object, error) {
	infos, err := afero.ReadDir(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s, %w", l.root, err)
	}

	objects := make([]Object, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}

		objects = append(objects, Object{
			Key:     fi.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}

	return objects, nil
}
