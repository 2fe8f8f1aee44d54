package internal

import (
	"bitwise74/filestore-api/aws"
	"bitwise74/filestore-api/db"
	"bitwise74/filestore-api/internal/blob"
	"bitwise74/filestore-api/internal/repository"
	"bitwise74/filestore-api/internal/service"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/security"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	v "github.com/spf13/viper"
	"gorm.io/gorm"
)

// SettingsFromConfig reads Settings from the loaded viper config
func SettingsFromConfig() Settings {
	return Settings{
		JWTSecret:     v.GetString("jwt.secret"),
		JWTTTL:        v.GetDuration("jwt.ttl"),
		Roles:         splitList(v.GetStringSlice("auth.roles")),
		CORSOrigins:   splitList(v.GetStringSlice("host.cors")),
		MaxUploadSize: v.GetInt64("upload.max_size"),
		RateLimit:     v.GetInt("security.rate_limit"),
		GCGrace:       v.GetDuration("gc.grace"),
		Turnstile: middleware.TurnstileConfig{
			Enabled: v.GetBool("cloudflare.turnstile.enabled"),
			Secret:  v.GetString("cloudflare.turnstile.secret_token"),
		},
	}
}

// NewDeps opens the database and blob store named in the config and
// builds everything on top of them
func NewDeps(ctx context.Context) (*Deps, error) {
	gdb, err := db.New(db.Options{
		Driver: v.GetString("db.driver"),
		DSN:    v.GetString("db.dsn"),
	})
	if err != nil {
		return nil, err
	}

	blobs, err := newBlobStore(ctx)
	if err != nil {
		return nil, err
	}

	return Assemble(gdb, blobs, SettingsFromConfig()), nil
}

// Assemble wires the services on top of an opened database and blob store
func Assemble(gdb *gorm.DB, blobs blob.Store, s Settings) *Deps {
	hasher := security.NewPasswordHasher()
	tokens := security.NewTokenService(s.JWTSecret, s.JWTTTL)
	entries := repository.NewEntries(gdb)

	return &Deps{
		DB:       gdb,
		Hasher:   hasher,
		Tokens:   tokens,
		Gate:     security.NewGate(tokens),
		Blobs:    blobs,
		Auth:     service.NewAuthService(repository.NewUsers(gdb), hasher, tokens, s.Roles),
		Files:    service.NewFileService(entries, blobs),
		BlobGC:   service.NewBlobGC(entries, blobs, s.GCGrace),
		Settings: s,
	}
}

func newBlobStore(ctx context.Context) (blob.Store, error) {
	switch v.GetString("storage.type") {
	case "s3":
		c, err := aws.NewS3(ctx, aws.S3Options{
			Bucket:          v.GetString("storage.s3.bucket"),
			Region:          v.GetString("storage.s3.region"),
			Endpoint:        v.GetString("storage.s3.endpoint"),
			AccessKeyID:     v.GetString("storage.s3.access_key_id"),
			SecretAccessKey: v.GetString("storage.s3.secret_access_key"),
			PathStyle:       v.GetBool("storage.s3.path_style"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		return blob.NewS3(c), nil
	default:
		return blob.NewLocal(afero.NewOsFs(), v.GetString("storage.local.root"))
	}
}

// splitList accepts both real lists and a comma separated env value
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
