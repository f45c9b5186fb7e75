package assets

import (
	"errors"
)

// Style is a resolved builtin stylesheet.
type Style struct {
	Name string
	CSS  string
	Path string // file under the custom base path; empty when embedded
}

// AssetResolver looks styles and starters up in a custom base path first
// and in the embedded assets second. Only a missing asset falls through:
// an invalid name, an unreadable file or a custom starter without a
// manifest is reported as is.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without a base path
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath
// uses embedded assets only; a path that is not a readable directory
// returns ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return resolver, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	resolver.custom = fsLoader
	return resolver, nil
}

// ResolveStyle loads a builtin stylesheet and reports where it came from,
// so callers can watch custom styles for changes.
func (r *AssetResolver) ResolveStyle(name string) (Style, error) {
	if r.custom != nil {
		css, path, err := r.custom.loadStyle(name)
		if err == nil {
			return Style{Name: name, CSS: css, Path: path}, nil
		}
		if !errors.Is(err, ErrStyleNotFound) {
			return Style{}, err
		}
	}

	css, err := r.embedded.LoadStyle(name)
	if err != nil {
		return Style{}, err
	}
	return Style{Name: name, CSS: css}, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	s, err := r.ResolveStyle(name)
	return s.CSS, err
}

// LoadStarter implements AssetLoader. A custom starter replaces the
// embedded one of the same name entirely; manifest and body are never
// mixed across sources.
func (r *AssetResolver) LoadStarter(name string) (*Starter, error) {
	if r.custom != nil {
		st, err := r.custom.LoadStarter(name)
		if err == nil || !errors.Is(err, ErrStarterNotFound) {
			return st, err
		}
	}
	return r.embedded.LoadStarter(name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
