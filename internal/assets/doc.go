// Package assets provides base stylesheets and starter manifests.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-ins)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in stylesheets (default, minimal) and
// starters (minimal, markdown, app) embedded at compile time.
//
// FilesystemLoader lets a manifest ship its own assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the CLI. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is
// not found, so a project can override one stylesheet and keep the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Stylesheet inlined by `builtin: name`
//	└── starters/
//	    └── {name}/
//	        ├── htmlindex.yaml   # Starter manifest (required)
//	        └── index.md         # Starter body (optional)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
