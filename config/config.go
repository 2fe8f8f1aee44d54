// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	GCOnce = pflag.Bool("gc-once", false, "Removes orphaned blobs once and exits")

	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validStorageTypes = []string{"s3", "local"}
	validDrivers      = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that. config.toml is optional, every key can come from the env.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	//
	// ENVS
	//
	for _, key := range []string{
		"app.log_level",
		"host.port", "host.cors",
		"db.driver", "db.dsn",
		"jwt.secret", "jwt.ttl",
		"auth.roles",
		"storage.type", "storage.local.root",
		"storage.s3.bucket", "storage.s3.region", "storage.s3.endpoint",
		"storage.s3.access_key_id", "storage.s3.secret_access_key", "storage.s3.path_style",
		"upload.max_size",
		"security.rate_limit",
		"gc.enabled", "gc.interval", "gc.grace",
		"cloudflare.turnstile.enabled", "cloudflare.turnstile.secret_token",
	} {
		v.BindEnv(key, strings.ReplaceAll(key, ".", "_"))
	}

	//
	// Defaults
	//
	setDefaults()

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if err := Validate(); err != nil {
		return err
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

func setDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", []string{})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("jwt.ttl", "168h")

	v.SetDefault("auth.roles", []string{"viewer", "editor", "admin"})

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local.root", "uploads")
	v.SetDefault("storage.s3.region", "auto")

	v.SetDefault("upload.max_size", 50)

	v.SetDefault("security.rate_limit", 10)

	v.SetDefault("gc.enabled", true)
	v.SetDefault("gc.interval", "24h")
	v.SetDefault("gc.grace", "1h")

	v.SetDefault("cloudflare.turnstile.enabled", false)
}

// Validate checks the loaded values. It doesn't touch the JWT secret,
// Setup handles a missing one itself.
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetDuration("jwt.ttl") <= 0 {
		return errors.New("jwt.ttl must be a positive duration")
	}

	roles := v.GetStringSlice("auth.roles")
	if len(roles) == 0 {
		return errors.New("auth.roles must contain at least one role")
	}

	if !slices.Contains(roles, "viewer") {
		return errors.New("auth.roles must contain the default viewer role")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetBool("gc.enabled") && v.GetDuration("gc.interval") <= 0 {
		return errors.New("gc.interval must be a positive duration")
	}

	if v.GetDuration("gc.grace") < 0 {
		return errors.New("gc.grace can't be negative")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("storage.s3.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetString("storage.s3.access_key_id") != "" && v.GetString("storage.s3.secret_access_key") == "" {
			return errors.New("secret access key can't be empty")
		}
	case "local":
		if v.GetString("storage.local.root") == "" {
			return errors.New("storage.local.root can't be empty")
		}
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	if !v.GetBool("cloudflare.turnstile.enabled") {
		fmt.Println("[WARNING]: Cloudflare's turnstile is disabled. Registration won't be guarded against bots")
	} else if v.GetString("cloudflare.turnstile.secret_token") == "" {
		return errors.New("turnstile secret token is missing")
	}

	return nil
}
