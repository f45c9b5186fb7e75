package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-htmlindex/internal/assets"
	"github.com/alnah/go-htmlindex/internal/fileutil"
)

// dirPermissions is used when init creates the target directory.
const dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute

// runInit writes a starter manifest (and body, if the starter has one)
// into the target directory. Nothing is written if any file exists.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one directory, got %d", ErrUsage, len(positional))
	}

	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}
	name := flags.template
	if name == "" {
		name = assets.DefaultStarterName
	}
	assetPath := firstNonEmpty(flags.assets.assetPath, loadEnvConfig().AssetPath)

	loader, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}
	starter, err := loader.LoadStarter(name)
	if err != nil {
		return err
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, assets.StarterManifestFile), starter.Manifest},
	}
	if starter.Body != "" {
		files = append(files, struct {
			path    string
			content string
		}{filepath.Join(dir, assets.StarterBodyFile), starter.Body})
	}

	// Check everything first so a refused init leaves no partial output
	for _, f := range files {
		if fileutil.FileExists(f.path) {
			return fmt.Errorf("%w: %s", fileutil.ErrFileExists, f.path)
		}
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	for _, f := range files {
		if err := fileutil.WriteNewFile(f.path, []byte(f.content)); err != nil {
			return err
		}
		if !flags.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", f.path)
		}
	}
	return nil
}
