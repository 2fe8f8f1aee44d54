// Package service holds the business logic behind the HTTP handlers
package service

import (
	"bitwise74/filestore-api/internal/blob"
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/internal/repository"
	"bitwise74/filestore-api/pkg/apperr"
	"bitwise74/filestore-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFolderNameEmpty   = apperr.Validation("Folder name is required")
	ErrMissingFields     = apperr.Validation("Missing required fields")
	ErrIDEmpty           = apperr.Validation("File ID is required")
	ErrFolderNotDownload = apperr.Validation("Folders can't be downloaded")
)

type FileService struct {
	entries *repository.Entries
	blobs   blob.Store
}

func NewFileService(entries *repository.Entries, blobs blob.Store) *FileService {
	return &FileService{
		entries: entries,
		blobs:   blobs,
	}
}

type UploadInput struct {
	ParentID *string
	Name     string
	MimeType string
	Body     io.Reader
	// Size is only a hint for the blob store, the stored size is the
	// number of bytes actually read from Body
	Size int64
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// countingReadSeeker keeps a seekable body seekable so stores can rewind
// it for retries
type countingReadSeeker struct {
	*countingReader
	s io.Seeker
}

func (c *countingReadSeeker) Seek(offset int64, whence int) (int64, error) {
	pos, err := c.s.Seek(offset, whence)
	if err == nil {
		c.n = pos
	}
	return pos, err
}

func countBody(r io.Reader) (io.Reader, *countingReader) {
	cr := &countingReader{r: r}
	if s, ok := r.(io.Seeker); ok {
		return &countingReadSeeker{countingReader: cr, s: s}, cr
	}
	return cr, cr
}

// checkParent makes sure parentID, when set, is a folder of the same owner
func checkParent(ctx context.Context, o *repository.OwnedEntries, parentID *string) error {
	if parentID == nil {
		return nil
	}

	parent, err := o.Get(ctx, *parentID)
	if err != nil {
		if errors.Is(err, apperr.ErrEntryNotFound) {
			return apperr.ErrParentNotFound
		}

		return fmt.Errorf("failed to fetch parent %s, %w", *parentID, err)
	}

	if !parent.IsFolder {
		return apperr.ErrParentNotFound
	}

	return nil
}

// Upload writes the bytes first and the metadata second. If the
// metadata can't be stored the blob is removed again.
func (s *FileService) Upload(ctx context.Context, ownerID uint, in UploadInput) (*model.Entry, error) {
	if in.Body == nil {
		return nil, validators.ErrNoFile
	}

	if err := validators.NameValidator(in.Name); err != nil {
		return nil, err
	}

	o := s.entries.For(ownerID)
	if err := checkParent(ctx, o, in.ParentID); err != nil {
		return nil, err
	}

	if in.MimeType == "" {
		in.MimeType = "application/octet-stream"
	}

	id := uuid.NewString()
	body, counter := countBody(in.Body)

	key, err := s.blobs.Put(ctx, id, in.Name, body, in.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob for %s, %w", id, err)
	}

	e := &model.Entry{
		ID:          id,
		Name:        in.Name,
		StoragePath: key,
		Size:        counter.n,
		MimeType:    in.MimeType,
		ParentID:    in.ParentID,
	}

	if err := o.Insert(ctx, e); err != nil {
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), key); derr != nil {
			zap.L().Error("Failed to remove blob after metadata insert failed",
				zap.String("key", key),
				zap.Error(derr),
			)
		}

		return nil, fmt.Errorf("failed to save metadata for %s, %w", id, err)
	}

	return e, nil
}

func (s *FileService) CreateFolder(ctx context.Context, ownerID uint, parentID *string, name string) (*model.Entry, error) {
	if name == "" {
		return nil, ErrFolderNameEmpty
	}

	if err := validators.NameValidator(name); err != nil {
		return nil, err
	}

	o := s.entries.For(ownerID)
	if err := checkParent(ctx, o, parentID); err != nil {
		return nil, err
	}

	e := &model.Entry{
		ID:       uuid.NewString(),
		Name:     name,
		MimeType: model.FolderMimeType,
		ParentID: parentID,
		IsFolder: true,
	}

	if err := o.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create folder, %w", err)
	}

	return e, nil
}

func (s *FileService) List(ctx context.Context, ownerID uint, parentID *string) ([]model.Entry, error) {
	return s.entries.For(ownerID).Children(ctx, parentID)
}

func (s *FileService) Search(ctx context.Context, ownerID uint, q string) ([]model.Entry, error) {
	return s.entries.For(ownerID).Search(ctx, q)
}

func (s *FileService) Rename(ctx context.Context, ownerID uint, id, name string) (*model.Entry, error) {
	if id == "" || name == "" {
		return nil, ErrMissingFields
	}

	if err := validators.NameValidator(name); err != nil {
		return nil, err
	}

	return s.entries.For(ownerID).Rename(ctx, id, name)
}

// Delete removes a file or a whole folder subtree. Blobs go first so
// a failure never leaves metadata pointing at deleted bytes.
func (s *FileService) Delete(ctx context.Context, ownerID uint, id string) error {
	if id == "" {
		return ErrIDEmpty
	}

	o := s.entries.For(ownerID)

	e, err := o.Get(ctx, id)
	if err != nil {
		return err
	}

	if !e.IsFolder {
		if err := s.blobs.Delete(ctx, e.StoragePath); err != nil {
			return fmt.Errorf("failed to delete blob of %s, %w", e.ID, err)
		}

		return o.Remove(ctx, e.ID)
	}

	tree, err := o.Subtree(ctx, e.ID)
	if err != nil {
		return fmt.Errorf("failed to collect contents of folder %s, %w", e.ID, err)
	}

	ids := make([]string, 0, len(tree))
	for _, c := range tree {
		ids = append(ids, c.ID)

		if c.IsFolder || c.StoragePath == "" {
			continue
		}

		if err := s.blobs.Delete(ctx, c.StoragePath); err != nil {
			return fmt.Errorf("failed to delete blob of %s, %w", c.ID, err)
		}
	}

	zap.L().Debug("Deleting folder",
		zap.String("id", e.ID),
		zap.Int("entries", len(ids)),
	)

	return o.RemoveAll(ctx, ids)
}

// Download opens the blob behind a file. The caller closes the reader.
func (s *FileService) Download(ctx context.Context, ownerID uint, id string) (io.ReadCloser, *model.Entry, error) {
	e, err := s.entries.For(ownerID).Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if e.IsFolder {
		return nil, nil, ErrFolderNotDownload
	}

	rc, err := s.blobs.Get(ctx, e.StoragePath)
	if err != nil {
		if errors.Is(err, blob.ErrBlobNotFound) {
			zap.L().Warn("Metadata points at a missing blob",
				zap.String("id", e.ID),
				zap.String("key", e.StoragePath),
				zap.Uint("ownerID", ownerID),
			)

			return nil, nil, apperr.ErrBlobMissing
		}

		return nil, nil, fmt.Errorf("failed to open blob of %s, %w", e.ID, err)
	}

	return rc, e, nil
}
