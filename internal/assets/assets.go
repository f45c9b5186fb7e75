package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name using the embedded loader.
// Returns ErrStyleNotFound if the style does not exist and
// ErrInvalidAssetName if ValidateStyleName rejects the name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadStarter loads a built-in starter by name using the embedded loader.
// Returns ErrStarterNotFound if the starter does not exist and
// ErrInvalidAssetName if ValidateStarterName rejects the name.
func LoadStarter(name string) (*Starter, error) {
	return defaultLoader.LoadStarter(name)
}

// Starters lists the built-in starter names in sorted order.
func Starters() []string {
	return defaultLoader.starterNames()
}

// Styles lists the built-in stylesheet names in sorted order.
func Styles() []string {
	return defaultLoader.styleNames()
}
