package repository

import (
	"bitwise74/filestore-api/db"
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/pkg/apperr"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(t *testing.T, gdb *gorm.DB, email string) *model.User {
	t.Helper()

	u := &model.User{Email: email, PasswordHash: "x", Role: model.DefaultRole}
	require.NoError(t, NewUsers(gdb).Create(context.Background(), u))

	return u
}

func insert(t *testing.T, o *OwnedEntries, name string, folder bool, parent *string) *model.Entry {
	t.Helper()

	e := &model.Entry{
		ID:       uuid.NewString(),
		Name:     name,
		IsFolder: folder,
		ParentID: parent,
		MimeType: "text/plain",
	}
	if folder {
		e.MimeType = model.FolderMimeType
	} else {
		e.StoragePath = e.ID + "-" + name
		e.Size = 1
	}

	require.NoError(t, o.Insert(context.Background(), e))
	return e
}

func names(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestUsers(t *testing.T) {
	gdb := db.NewTestDB(t)
	users := NewUsers(gdb)
	ctx := context.Background()

	u := newUser(t, gdb, "a@b.co")
	assert.NotZero(t, u.ID)

	err := users.Create(ctx, &model.User{Email: "a@b.co", PasswordHash: "y", Role: "viewer"})
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)

	taken, err := users.EmailTaken(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = users.EmailTaken(ctx, "A@b.co")
	require.NoError(t, err)
	assert.False(t, taken)

	found, err := users.ByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.ByEmail(ctx, "nobody@b.co")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEntriesOwnershipScope(t *testing.T) {
	gdb := db.NewTestDB(t)
	entries := NewEntries(gdb)
	ctx := context.Background()

	alice := newUser(t, gdb, "alice@example.com")
	bob := newUser(t, gdb, "bob@example.com")

	e := insert(t, entries.For(alice.ID), "secret.txt", false, nil)

	_, err := entries.For(bob.ID).Get(ctx, e.ID)
	assert.ErrorIs(t, err, apperr.ErrEntryNotFound)

	_, err = entries.For(bob.ID).Rename(ctx, e.ID, "mine.txt")
	assert.ErrorIs(t, err, apperr.ErrEntryNotFound)

	err = entries.For(bob.ID).Remove(ctx, e.ID)
	assert.ErrorIs(t, err, apperr.ErrEntryNotFound)

	list, err := entries.For(bob.ID).Children(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	res, err := entries.For(bob.ID).Search(ctx, "secret")
	require.NoError(t, err)
	assert.Empty(t, res)

	got, err := entries.For(alice.ID).Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret.txt", got.Name)
	assert.Equal(t, alice.ID, got.OwnerID)
}

func TestEntriesInsertForcesOwner(t *testing.T) {
	gdb := db.NewTestDB(t)
	entries := NewEntries(gdb)

	alice := newUser(t, gdb, "alice@example.com")
	bob := newUser(t, gdb, "bob@example.com")

	e := &model.Entry{ID: uuid.NewString(), Name: "x", MimeType: "text/plain", OwnerID: bob.ID}
	require.NoError(t, entries.For(alice.ID).Insert(context.Background(), e))

	assert.Equal(t, alice.ID, e.OwnerID)
}

func TestEntriesChildrenOrder(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	insert(t, o, "b.txt", false, nil)
	insert(t, o, "Zeta", true, nil)
	insert(t, o, "a.txt", false, nil)
	docs := insert(t, o, "Docs", true, nil)
	insert(t, o, "inner.txt", false, &docs.ID)

	root, err := o.Children(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Docs", "Zeta", "a.txt", "b.txt"}, names(root))

	inner, err := o.Children(ctx, &docs.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner.txt"}, names(inner))
}

func TestEntriesSearch(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	insert(t, o, "Report.PDF", false, nil)
	insert(t, o, "annual report", true, nil)
	insert(t, o, "100%_done.txt", false, nil)
	insert(t, o, "100x done.txt", false, nil)

	testCases := []struct {
		query string
		want  []string
	}{
		{"", []string{}},
		{"report", []string{"Report.PDF", "annual report"}},
		{"REPORT", []string{"Report.PDF", "annual report"}},
		{"%", []string{"100%_done.txt"}},
		{"_", []string{"100%_done.txt"}},
		{"nothing", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			res, err := o.Search(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res))
		})
	}
}

func TestEntriesSearchLimit(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)

	for i := 0; i < SearchLimit+10; i++ {
		insert(t, o, fmt.Sprintf("file-%03d.txt", i), false, nil)
	}

	res, err := o.Search(context.Background(), "file")
	require.NoError(t, err)
	assert.Len(t, res, SearchLimit)
	assert.Equal(t, "file-000.txt", res[0].Name)
}

func TestEntriesRename(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	e := insert(t, o, "old.txt", false, nil)
	before, err := o.Get(ctx, e.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	renamed, err := o.Rename(ctx, e.ID, "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "new.txt", renamed.Name)
	assert.True(t, renamed.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.StoragePath, renamed.StoragePath)

	_, err = o.Rename(ctx, "missing", "x")
	assert.ErrorIs(t, err, apperr.ErrEntryNotFound)
}

func TestEntriesSubtreeAndRemoveAll(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	top := insert(t, o, "top", true, nil)
	sub := insert(t, o, "sub", true, &top.ID)
	insert(t, o, "a.txt", false, &top.ID)
	insert(t, o, "b.txt", false, &sub.ID)
	keep := insert(t, o, "keep.txt", false, nil)

	tree, err := o.Subtree(ctx, top.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"top", "sub", "a.txt", "b.txt"}, names(tree))
	assert.Equal(t, "top", tree[0].Name)

	ids := make([]string, len(tree))
	for i, e := range tree {
		ids[i] = e.ID
	}
	require.NoError(t, o.RemoveAll(ctx, ids))

	left, err := o.Children(ctx, nil)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}

func TestEntriesReferencedPaths(t *testing.T) {
	gdb := db.NewTestDB(t)
	entries := NewEntries(gdb)

	alice := newUser(t, gdb, "alice@example.com")
	bob := newUser(t, gdb, "bob@example.com")

	a := insert(t, entries.For(alice.ID), "a.txt", false, nil)
	b := insert(t, entries.For(bob.ID), "b.txt", false, nil)

	found, err := entries.ReferencedPaths(context.Background(), []string{a.StoragePath, b.StoragePath, "orphan"})
	require.NoError(t, err)

	assert.Len(t, found, 2)
	assert.Contains(t, found, a.StoragePath)
	assert.Contains(t, found, b.StoragePath)
	assert.NotContains(t, found, "orphan")
}

func TestEntriesSearchNonASCII(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	e := insert(t, o, "Ärger.txt", false, nil)
	insert(t, o, "ÉTÉ 2024", true, nil)

	testCases := []struct {
		query string
		want  []string
	}{
		{"ärger", []string{"Ärger.txt"}},
		{"Ärger", []string{"Ärger.txt"}},
		{"ÄRGER.TXT", []string{"Ärger.txt"}},
		{"été", []string{"ÉTÉ 2024"}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			res, err := o.Search(ctx, tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res))
		})
	}

	_, err := o.Rename(ctx, e.ID, "Öl.txt")
	require.NoError(t, err)

	res, err := o.Search(ctx, "öl")
	require.NoError(t, err)
	assert.Equal(t, []string{"Öl.txt"}, names(res))

	res, err = o.Search(ctx, "ärger")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestEntriesInsertIntoDeletedParent(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	folder := insert(t, o, "gone", true, nil)
	require.NoError(t, o.Remove(ctx, folder.ID))

	err := o.Insert(ctx, &model.Entry{
		ID:       uuid.NewString(),
		Name:     "late.txt",
		MimeType: "text/plain",
		ParentID: &folder.ID,
	})
	assert.ErrorIs(t, err, apperr.ErrParentNotFound)

	list, err := o.Children(ctx, &folder.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntriesDeletingFolderCascadesInDatabase(t *testing.T) {
	gdb := db.NewTestDB(t)
	alice := newUser(t, gdb, "alice@example.com")
	o := NewEntries(gdb).For(alice.ID)
	ctx := context.Background()

	folder := insert(t, o, "top", true, nil)
	child := insert(t, o, "child.txt", false, &folder.ID)

	require.NoError(t, o.Remove(ctx, folder.ID))

	_, err := o.Get(ctx, child.ID)
	assert.ErrorIs(t, err, apperr.ErrEntryNotFound)
}
