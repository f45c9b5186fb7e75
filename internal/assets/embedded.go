package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*
var styles embed.FS

//go:embed starters
var starters embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a stylesheet from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadStarter loads a starter from embedded assets by name.
func (e *EmbeddedLoader) LoadStarter(name string) (*Starter, error) {
	if err := ValidateStarterName(name); err != nil {
		return nil, err
	}

	dir := "starters/" + name
	if _, err := fs.Stat(starters, dir); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStarterNotFound, name)
	}

	manifest, err := starters.ReadFile(dir + "/" + StarterManifestFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrIncompleteStarter, name)
	}

	body, err := starters.ReadFile(dir + "/" + StarterBodyFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return &Starter{Name: name, Manifest: string(manifest), Body: string(body)}, nil
}

// starterNames lists embedded starter directories.
func (e *EmbeddedLoader) starterNames() []string {
	entries, err := starters.ReadDir("starters")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// styleNames lists embedded stylesheets without their .css extension.
func (e *EmbeddedLoader) styleNames() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok && !entry.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
