package service

import (
	"bitwise74/filestore-api/db"
	"bitwise74/filestore-api/internal/blob"
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/internal/repository"
	"bitwise74/filestore-api/pkg/security"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testRoles = []string{"viewer", "editor", "admin"}

type env struct {
	db      *gorm.DB
	fs      afero.Fs
	blobs   *blob.Local
	entries *repository.Entries
	auth    *AuthService
	files   *FileService
	tokens  *security.TokenService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb := db.NewTestDB(t)
	fsys := afero.NewMemMapFs()

	blobs, err := blob.NewLocal(fsys, "uploads")
	require.NoError(t, err)

	hasher := security.NewPasswordHasher()
	hasher.Memory = 1024
	hasher.Iterations = 1

	tokens := security.NewTokenService("service-test-secret", 7*24*time.Hour)
	entries := repository.NewEntries(gdb)

	return &env{
		db:      gdb,
		fs:      fsys,
		blobs:   blobs,
		entries: entries,
		auth:    NewAuthService(repository.NewUsers(gdb), hasher, tokens, testRoles),
		files:   NewFileService(entries, blobs),
		tokens:  tokens,
	}
}

func (e *env) user(t *testing.T, email string) model.PublicUser {
	t.Helper()

	u, err := e.auth.Register(context.Background(), email, "secret123", "")
	require.NoError(t, err)

	return u
}
