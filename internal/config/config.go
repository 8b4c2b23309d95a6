// Package config loads the YAML configuration of the encore command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-encore/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxConfigSize limits the size of a config file (1MB).
const MaxConfigSize = 1 << 20

// Field limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxEntryNameLength = 255  // Encore entry names are file stems
	MaxEntries         = 100
	MaxWorkers         = 32
)

// userConfigSubdir is the directory searched under os.UserConfigDir.
const userConfigSubdir = "go-encore"

// Config holds the configuration of the encore command.
type Config struct {
	Entrypoints string          `yaml:"entrypoints"` // Path to entrypoints.json (empty = default)
	Manifest    string          `yaml:"manifest"`    // Path to manifest.json (empty = default)
	Output      OutputConfig    `yaml:"output"`
	Render      RenderConfig    `yaml:"render"`
	Check       CheckConfig     `yaml:"check"`
	Integrity   IntegrityConfig `yaml:"integrity"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to the template)
}

// RenderConfig defines page rendering options.
type RenderConfig struct {
	Workers       int      `yaml:"workers"`       // 0 = GOMAXPROCS
	Entries       []string `yaml:"entries"`       // Entrypoints injected into every page
	RewriteAssets bool     `yaml:"rewriteAssets"` // Rewrite manifest keys in img/link/script/source
	Markdown      string   `yaml:"markdown"`      // Markdown file exposed as .Content
}

// CheckConfig defines options for the check command.
type CheckConfig struct {
	PublicDir string `yaml:"publicDir"` // Web root the asset paths resolve against
}

// IntegrityConfig defines options for the integrity command.
type IntegrityConfig struct {
	Algorithm string `yaml:"algorithm"` // sha256, sha384 or sha512 (empty = sha384)
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("entrypoints", c.Entrypoints, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("manifest", c.Manifest, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.markdown", c.Render.Markdown, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("check.publicDir", c.Check.PublicDir, MaxPathLength); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if len(c.Render.Entries) > MaxEntries {
		return fmt.Errorf("%w: render.entries has %d items (max %d)", ErrInvalidValue, len(c.Render.Entries), MaxEntries)
	}
	for i, entry := range c.Render.Entries {
		if entry == "" {
			return fmt.Errorf("%w: render.entries[%d] is empty", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("render.entries[%d]", i), entry, MaxEntryNameLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Integrity.Algorithm) {
	case "", "sha256", "sha384", "sha512":
		// valid
	default:
		return fmt.Errorf("%w: integrity.algorithm %q (must be sha256, sha384, or sha512)", ErrInvalidValue, c.Integrity.Algorithm)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that relies on library defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:    OutputConfig{DefaultDir: ""},
		Render:    RenderConfig{Workers: 0},
		Check:     CheckConfig{PublicDir: ""},
		Integrity: IntegrityConfig{Algorithm: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := fileutil.ReadFileLimited(fileutil.OSOpener, configPath, MaxConfigSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrConfigParse)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate locations for a config name, in
// lookup order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigSubdir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
