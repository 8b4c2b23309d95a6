package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-encore/internal/config"
)

// Environment variable names.
const (
	envConfigPath  = "ENCORE_CONFIG"
	envEntrypoints = "ENCORE_ENTRYPOINTS"
	envManifest    = "ENCORE_MANIFEST"
	envOutputDir   = "ENCORE_OUTPUT_DIR"
	envWorkers     = "ENCORE_WORKERS"
	envPublicDir   = "ENCORE_PUBLIC_DIR"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // ENCORE_CONFIG: config file name or path
	Entrypoints string // ENCORE_ENTRYPOINTS: entrypoints.json path
	Manifest    string // ENCORE_MANIFEST: manifest.json path
	OutputDir   string // ENCORE_OUTPUT_DIR: render output directory
	Workers     int    // ENCORE_WORKERS: parallel render workers
	PublicDir   string // ENCORE_PUBLIC_DIR: web root for check
}

// knownEnvVars lists valid ENCORE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfigPath:  true,
	envEntrypoints: true,
	envManifest:    true,
	envOutputDir:   true,
	envWorkers:     true,
	envPublicDir:   true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized ENCORE_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv(envConfigPath),
		Entrypoints: os.Getenv(envEntrypoints),
		Manifest:    os.Getenv(envManifest),
		OutputDir:   os.Getenv(envOutputDir),
		PublicDir:   os.Getenv(envPublicDir),
	}

	// Invalid or non-positive values are ignored
	if workers := os.Getenv(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ENCORE_* variables.
// Helps catch typos like ENCORE_MANIFST.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ENCORE_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Entrypoints != "" {
		cfg.Entrypoints = env.Entrypoints
	}
	if env.Manifest != "" {
		cfg.Manifest = env.Manifest
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.PublicDir != "" {
		cfg.Check.PublicDir = env.PublicDir
	}
}
