package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	htmlindex "github.com/alnah/go-htmlindex"
	"github.com/alnah/go-htmlindex/internal/assets"
	"github.com/alnah/go-htmlindex/internal/config"
	"github.com/alnah/go-htmlindex/internal/fileutil"
	"github.com/alnah/go-htmlindex/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrReadBody    = errors.New("failed to read body source")
	ErrWriteOutput = errors.New("failed to write output")
	ErrListen      = errors.New("failed to listen")
)

// resolveManifestName picks the manifest to load.
// Priority: positional argument or --config > HTMLINDEX_CONFIG > default name.
func resolveManifestName(positional []string, flagValue string, env *envConfig) (string, error) {
	if len(positional) > 1 {
		return "", fmt.Errorf("%w: expected at most one manifest, got %d", ErrUsage, len(positional))
	}
	if len(positional) == 1 {
		if flagValue != "" && flagValue != positional[0] {
			return "", fmt.Errorf("%w: manifest given both as argument and --config", ErrUsage)
		}
		return positional[0], nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	return config.DefaultName, nil
}

// loadManifest loads a manifest, applies env and flag overrides, and
// validates the result.
func loadManifest(name string, env *envConfig, doc documentFlags, a assetFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	// Manifest paths are manifest-relative; overrides are cwd-relative
	cfg.Assets.BasePath = cfg.ResolvePath(cfg.Assets.BasePath)

	applyEnvConfig(env, cfg)
	mergeFlags(doc, a, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to the manifest (CLI wins).
func mergeFlags(doc documentFlags, a assetFlags, cfg *config.Config) {
	if doc.lang != "" {
		cfg.Lang = doc.lang
	}
	if doc.title != "" {
		cfg.Title = doc.title
	}
	if a.assetPath != "" {
		cfg.Assets.BasePath = a.assetPath
	}
}

// pdfOptions converts manifest page settings for the renderer.
func pdfOptions(p config.PDFConfig) *htmlindex.PDFOptions {
	return &htmlindex.PDFOptions{
		PaperWidth:  p.PaperWidth,
		PaperHeight: p.PaperHeight,
		Margin:      p.Margin,
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, htmlindex.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, htmlindex.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userManifestPaths())
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, fileutil.ErrFileExists):
		return hints.ForFileExists()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputFile()
	case errors.Is(err, ErrListen):
		return hints.ForAddrInUse()
	}
	return ""
}

// userManifestPaths lists where the default manifest is searched in the
// user config directory.
func userManifestPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.DefaultName, config.DefaultName+".yaml")}
}
