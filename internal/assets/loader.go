package assets

// AssetLoader defines the contract for loading stylesheets and starters.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName for names ValidateStyleName rejects.
	LoadStyle(name string) (string, error)

	// LoadStarter loads a starter by name.
	// Returns ErrStarterNotFound if the starter doesn't exist.
	// Returns ErrIncompleteStarter if it has no manifest.
	// Returns ErrInvalidAssetName for names ValidateStarterName rejects.
	LoadStarter(name string) (*Starter, error)
}
