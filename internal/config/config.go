// Package config reads server settings from the environment.
//
// Values may also come from a .env file loaded with godotenv; variables
// already present in the process environment take precedence. Invalid values
// are logged and replaced by their defaults rather than aborting startup.
//
// Variables:
//
//	PHOTO_MCP_LOG_LEVEL       "debug" enables verbose logging
//	PHOTO_MCP_PREVIEW_SIZE    edge length of square previews (default 256)
//	PHOTO_MCP_EXPORT_WORKERS  concurrent export renders (default NumCPU)
//	PHOTO_MCP_OUTPUT_DIR      default export directory (default ".")
//	PHOTO_MCP_JPEG_QUALITY    1-100 (default 92)
package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/blang/semver"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel      = "PHOTO_MCP_LOG_LEVEL"
	EnvPreviewSize   = "PHOTO_MCP_PREVIEW_SIZE"
	EnvExportWorkers = "PHOTO_MCP_EXPORT_WORKERS"
	EnvOutputDir     = "PHOTO_MCP_OUTPUT_DIR"
	EnvJPEGQuality   = "PHOTO_MCP_JPEG_QUALITY"
)

// Defaults.
const (
	DefaultPreviewSize = 256
	DefaultJPEGQuality = 92
	DefaultOutputDir   = "."

	// MaxPreviewSize caps preview tiles to keep memory bounded.
	MaxPreviewSize = 4096
)

// Config holds the runtime settings of the server.
type Config struct {
	LogLevel      string
	PreviewSize   int
	ExportWorkers int
	OutputDir     string
	JPEGQuality   int
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:      "info",
		PreviewSize:   DefaultPreviewSize,
		ExportWorkers: runtime.NumCPU(),
		OutputDir:     DefaultOutputDir,
		JPEGQuality:   DefaultJPEGQuality,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// environment and then returns FromEnv(). Missing files are not an error.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ignoring env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() Config {
	cfg := Default()

	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.OutputDir = v
	}
	cfg.PreviewSize = intVar(EnvPreviewSize, cfg.PreviewSize, 1, MaxPreviewSize)
	cfg.ExportWorkers = intVar(EnvExportWorkers, cfg.ExportWorkers, 1, 256)
	cfg.JPEGQuality = intVar(EnvJPEGQuality, cfg.JPEGQuality, 1, 100)

	return cfg
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// intVar parses an integer variable, falling back to def when it is unset,
// malformed or outside [lo, hi].
func intVar(name string, def, lo, hi int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		log.Printf("Invalid %s=%q (want %d-%d), using %d", name, raw, lo, hi, def)
		return def
	}
	return n
}

// NormalizeVersion returns v as a semantic version string. A leading "v" is
// dropped. Build versions that are not valid semver, such as "dev", map to
// "0.0.0-" followed by the sanitized input.
func NormalizeVersion(v string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(v), "v")
	if sv, err := semver.Parse(trimmed); err == nil {
		return sv.String()
	}

	var sb strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	pre := strings.Trim(sb.String(), "-")
	if pre == "" {
		pre = "unknown"
	}
	return semver.Version{Pre: []semver.PRVersion{{VersionStr: pre}}}.String()
}
