package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-htmlindex/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing the manifest.
type envConfig struct {
	ConfigPath     string        // HTMLINDEX_CONFIG: manifest name or path
	Lang           string        // HTMLINDEX_LANG: document language
	Title          string        // HTMLINDEX_TITLE: document title
	AssetPath      string        // HTMLINDEX_ASSET_PATH: custom asset directory
	HighlightStyle string        // HTMLINDEX_HIGHLIGHT_STYLE: chroma style for markdown bodies
	Timeout        time.Duration // HTMLINDEX_TIMEOUT: PDF generation timeout
	Addr           string        // HTMLINDEX_ADDR: serve listen address
	LogFormat      string        // HTMLINDEX_LOG_FORMAT: serve log format
}

// knownEnvVars lists valid HTMLINDEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTMLINDEX_CONFIG":          true,
	"HTMLINDEX_LANG":            true,
	"HTMLINDEX_TITLE":           true,
	"HTMLINDEX_ASSET_PATH":      true,
	"HTMLINDEX_HIGHLIGHT_STYLE": true,
	"HTMLINDEX_TIMEOUT":         true,
	"HTMLINDEX_ADDR":            true,
	"HTMLINDEX_LOG_FORMAT":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized HTMLINDEX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("HTMLINDEX_CONFIG"),
		Lang:           os.Getenv("HTMLINDEX_LANG"),
		Title:          os.Getenv("HTMLINDEX_TITLE"),
		AssetPath:      os.Getenv("HTMLINDEX_ASSET_PATH"),
		HighlightStyle: os.Getenv("HTMLINDEX_HIGHLIGHT_STYLE"),
		Addr:           os.Getenv("HTMLINDEX_ADDR"),
		LogFormat:      os.Getenv("HTMLINDEX_LOG_FORMAT"),
	}

	// Invalid or non-positive durations are ignored
	if timeout := os.Getenv("HTMLINDEX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTMLINDEX_* variables.
// Helps catch typos like HTMLINDEX_TITEL instead of HTMLINDEX_TITLE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTMLINDEX_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to the manifest.
// Set variables replace manifest values, giving:
// CLI flags > env vars > manifest
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Lang != "" {
		cfg.Lang = env.Lang
	}
	if env.Title != "" {
		cfg.Title = env.Title
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	// Only meaningful for markdown bodies; validation rejects it elsewhere
	if env.HighlightStyle != "" && cfg.Body.Markdown != "" {
		cfg.Body.HighlightStyle = env.HighlightStyle
	}
	if env.Addr != "" {
		cfg.Serve.Addr = env.Addr
	}
}
