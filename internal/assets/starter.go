package assets

// Starter is the content `htmlindex init` writes into a new project.
type Starter struct {
	Name     string // Identifier
	Manifest string // htmlindex.yaml content
	Body     string // index.md content, empty if the starter has none
}

// Starter file names.
const (
	StarterManifestFile = "htmlindex.yaml"
	StarterBodyFile     = "index.md"
)

// DefaultStarterName is the starter used when none is requested.
const DefaultStarterName = "minimal"

// DefaultStyleName is the name of the built-in base stylesheet.
const DefaultStyleName = "default"
