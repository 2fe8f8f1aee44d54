package main

import (
	"bitwise74/filestore-api/app"
	"bitwise74/filestore-api/config"
	"bitwise74/filestore-api/internal"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	logger, err := app.NewLogger(v.GetString("app.log_level"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := internal.NewDeps(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	if *config.GCOnce {
		n, err := d.BlobGC.Run(ctx)
		if err != nil {
			zap.L().Fatal("Blob cleanup failed", zap.Error(err))
		}

		zap.L().Info("Blob cleanup finished", zap.Int("removed", n))
		return
	}

	if v.GetBool("gc.enabled") {
		d.BlobGC.Start(ctx, v.GetDuration("gc.interval"))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", v.GetInt("host.port")),
		Handler:           app.NewRouter(ctx, d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed to shut down gracefully", zap.Error(err))
		}
	}()

	zap.L().Info("Server starting", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Fatal("Server stopped", zap.Error(err))
	}
}
