package internal

import (
	"bitwise74/filestore-api/internal/blob"
	"bitwise74/filestore-api/internal/service"
	"bitwise74/filestore-api/pkg/middleware"
	"bitwise74/filestore-api/pkg/security"
	"time"

	"gorm.io/gorm"
)

// Settings are the config values the services and the HTTP layer need
type Settings struct {
	JWTSecret     string
	JWTTTL        time.Duration
	Roles         []string
	CORSOrigins   []string
	MaxUploadSize int64 // bytes
	RateLimit     int   // requests per second per IP, 0 disables it
	GCGrace       time.Duration
	Turnstile     middleware.TurnstileConfig
}

type Deps struct {
	DB       *gorm.DB
	Hasher   *security.PasswordHasher
	Tokens   *security.TokenService
	Gate     *security.Gate
	Blobs    blob.Store
	Auth     *service.AuthService
	Files    *service.FileService
	BlobGC   *service.BlobGC
	Settings Settings
}
