// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the connection string for the remote store.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// GeminiAPIKey authenticates calls against the Gemini API.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// GeminiBaseURL overrides the Gemini API host.
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	// LocalStoreDir is the directory holding the local fallback slot.
	LocalStoreDir string `env:"LOCAL_STORE_DIR"`

	// AdminEmail is the address granted administrator rights at login.
	AdminEmail string `env:"ADMIN_EMAIL"`

	// SnapshotInterval is how often the local fallback copy is refreshed
	// from the remote store. Zero disables the refresher.
	SnapshotInterval time.Duration `env:"SNAPSHOT_INTERVAL"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "remote store connection string")
	flag.StringVar(&options.LocalStoreDir, "l", ".", "directory for the local fallback slot")
	flag.StringVar(&options.AdminEmail, "admin", "admin@copacrm.com", "administrator login email")
	flag.DurationVar(&options.SnapshotInterval, "refresh", 5*time.Minute, "local snapshot refresh interval")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. Environment variables override flags. It returns a
// pointer to the Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}
