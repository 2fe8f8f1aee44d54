// Package db opens the metadata database and migrates its schema
package db

import (
	"bitwise74/filestore-api/internal/model"
	"bitwise74/filestore-api/pkg/util"
	"context"
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Driver string // sqlite or postgres
	DSN    string
	Logger logger.Interface
	// AllowCreate lets sqlite create a missing database file even inside
	// a container. Only test databases set it.
	AllowCreate bool
}

var inContainer = util.InContainer

func New(o Options) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch o.Driver {
	case "", "sqlite":
		if o.DSN == "" {
			o.DSN = "database.db"
		}

		// If running in a docker container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if !o.AllowCreate && inContainer() {
			if _, err := os.Stat(o.DSN); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", o.DSN)
			}
		}

		dialector = sqlite.Open(o.DSN + "?_foreign_keys=on")
	case "postgres":
		dialector = postgres.Open(o.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", o.Driver)
	}

	if o.Logger == nil {
		o.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         o.Logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", o.Driver, err)
	}

	err = db.AutoMigrate(model.User{}, model.Entry{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// Ping checks the database connection. Every call hits the database,
// nothing is remembered between calls.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
