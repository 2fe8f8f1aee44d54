package repository

import (
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/pkg/apperr"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const SearchLimit = 50

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Entries struct {
	db *gorm.DB
}

func NewEntries(db *gorm.DB) *Entries {
	return &Entries{db: db}
}

// For returns a handle whose queries only ever see rows owned by ownerID
func (r *Entries) For(ownerID uint) *OwnedEntries {
	return &OwnedEntries{db: r.db, ownerID: ownerID}
}

// ReferencedPaths returns the subset of paths that still belong to an
// entry, regardless of owner
func (r *Entries) ReferencedPaths(ctx context.Context, paths []string) (map[string]struct{}, error) {
	found := make(map[string]struct{}, len(paths))

	// Keep well under sqlite's bound parameter limit
	for start := 0; start < len(paths); start += 500 {
		end := min(start+500, len(paths))

		var batch []string
		err := r.db.WithContext(ctx).
			Model(model.Entry{}).
			Where("storage_path IN ?", paths[start:end]).
			Pluck("storage_path", &batch).
			Error
		if err != nil {
			return nil, err
		}

		for _, p := range batch {
			found[p] = struct{}{}
		}
	}

	return found, nil
}

type OwnedEntries struct {
	db      *gorm.DB
	ownerID uint
}

func (o *OwnedEntries) scoped(ctx context.Context) *gorm.DB {
	return o.db.WithContext(ctx).Where("owner_id = ?", o.ownerID)
}

// Insert stores e with the handle's owner, whatever e.OwnerID was
func (o *OwnedEntries) Insert(ctx context.Context, e *model.Entry) error {
	e.OwnerID = o.ownerID
	e.NameFolded = model.FoldName(e.Name)

	err := o.db.WithContext(ctx).Create(e).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.New(apperr.KindConflict, "File already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated) && e.ParentID != nil:
		// The parent was deleted after it was checked
		return apperr.ErrParentNotFound
	}

	return err
}

func (o *OwnedEntries) Get(ctx context.Context, id string) (*model.Entry, error) {
	var e model.Entry

	err := o.scoped(ctx).
		Where("id = ?", id).
		First(&e).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrEntryNotFound
		}

		return nil, err
	}

	return &e, nil
}

// Children lists the direct children of parentID, or the root level
// when it's nil. Folders come first, then everything by name.
func (o *OwnedEntries) Children(ctx context.Context, parentID *string) ([]model.Entry, error) {
	q := o.scoped(ctx)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	entries := []model.Entry{}
	err := q.
		Order("is_folder DESC").
		Order("name ASC").
		Find(&entries).
		Error

	return entries, err
}

// Search does a case insensitive substring match on names. LIKE
// wildcards in q are matched literally.
func (o *OwnedEntries) Search(ctx context.Context, q string) ([]model.Entry, error) {
	entries := []model.Entry{}
	if q == "" {
		return entries, nil
	}

	pattern := "%" + likeEscaper.Replace(model.FoldName(q)) + "%"

	err := o.scoped(ctx).
		Where(`name_folded LIKE ? ESCAPE '\'`, pattern).
		Order("name ASC").
		Limit(SearchLimit).
		Find(&entries).
		Error

	return entries, err
}

func (o *OwnedEntries) Rename(ctx context.Context, id, name string) (*model.Entry, error) {
	res := o.scoped(ctx).
		Model(model.Entry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"name_folded": model.FoldName(name),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, apperr.ErrEntryNotFound
	}

	return o.Get(ctx, id)
}

func (o *OwnedEntries) Remove(ctx context.Context, id string) error {
	res := o.scoped(ctx).
		Where("id = ?", id).
		Delete(model.Entry{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperr.ErrEntryNotFound
	}

	return nil
}

// RemoveAll deletes every id in one transaction
func (o *OwnedEntries) RemoveAll(ctx context.Context, ids []string) error {
	return o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("owner_id = ? AND id IN ?", o.ownerID, ids).
			Delete(model.Entry{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete %d entries, %w", len(ids), err)
		}

		return nil
	})
}

// Subtree returns the entry with the given id followed by all of its
// descendants, breadth first
func (o *OwnedEntries) Subtree(ctx context.Context, id string) ([]model.Entry, error) {
	root, err := o.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	all := []model.Entry{*root}
	level := []string{root.ID}

	for len(level) > 0 {
		var children []model.Entry

		err := o.scoped(ctx).
			Where("parent_id IN ?", level).
			Find(&children).
			Error
		if err != nil {
			return nil, err
		}

		level = level[:0]
		for _, c := range children {
			all = append(all, c)
			if c.IsFolder {
				level = append(level, c.ID)
			}
		}
	}

	return all, nil
}
