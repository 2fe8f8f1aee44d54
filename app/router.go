package app

import (
	"bitwise74/filestore-api/app/file"
	"bitwise74/filestore-api/app/root"
	"bitwise74/filestore-api/app/user"
	"bitwise74/filestore-api/internal"
	"bitwise74/filestore-api/pkg/middleware"
	"context"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const healthCacheTTL = 2 * time.Second

// NewRouter builds the HTTP surface on top of d. Background goroutines
// started by middleware stop when ctx is done.
func NewRouter(ctx context.Context, d *internal.Deps) *gin.Engine {
	router := gin.New()
	logger := zap.L()

	corsConfig := cors.Config{
		AllowOrigins:     d.Settings.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}

	router.Use(
		cors.New(corsConfig),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(logger, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/heartbeat"},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{zap.String("requestID", c.GetString("requestID"))}
				if userID, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("userID", userID))
				}
				return fields
			},
		}),
		ginzap.RecoveryWithZap(logger, true),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 8 << 20

	store := persist.NewMemoryStore(time.Minute)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// GET /health			-> Reports whether the database is reachable
	router.GET("/health", cache.CacheByRequestURI(store, healthCacheTTL), func(c *gin.Context) { root.Health(c, d) })

	rateLimiter := middleware.RateLimiterMiddleware(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: d.Settings.RateLimit,
		Burst:             d.Settings.RateLimit * 2,
	})
	turnstile := middleware.NewTurnstileMiddleware(d.Settings.Turnstile)
	auth := middleware.NewAuthMiddleware(d.Gate)

	a := router.Group("/auth", rateLimiter)
	{
		// POST /auth/register		-> Registers a new user
		a.POST("/register", turnstile, func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /auth/login		-> Checks credentials and returns a token
		a.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// GET /auth/me			-> Returns the identity behind a token
		a.GET("/me", auth, user.UserMe)
	}

	f := router.Group("/files", middleware.NewAuthMiddleware(d.Gate, d.Settings.Roles...))
	{
		// GET /files/list?parentId=	-> Lists a folder, or the root level
		f.GET("/list", func(c *gin.Context) { file.FileList(c, d) })

		// GET /files/search?q=		-> Searches the user's files by name
		f.GET("/search", func(c *gin.Context) { file.FileSearch(c, d) })

		// POST /files/create-folder	-> Creates a folder
		f.POST("/create-folder", func(c *gin.Context) { file.FileCreateFolder(c, d) })

		// POST /files/upload		-> Uploads a file from a multipart form
		f.POST("/upload", uploadLimiter(d.Settings.MaxUploadSize), func(c *gin.Context) { file.FileUpload(c, d) })

		// GET /files/download/:id	-> Streams a file's content
		f.GET("/download/:id", func(c *gin.Context) { file.FileDownload(c, d) })

		// PUT /files/rename		-> Renames a file or folder
		f.PUT("/rename", func(c *gin.Context) { file.FileRename(c, d) })

		// DELETE /files/delete		-> Deletes a file, or a folder and its contents
		f.DELETE("/delete", func(c *gin.Context) { file.FileDelete(c, d) })
	}

	return router
}

// uploadLimiter leaves room for the multipart framing around the file
func uploadLimiter(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return middleware.BodySizeLimiter(maxSize + 1<<20)
}
