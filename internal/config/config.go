package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-htmlindex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// DefaultName is the manifest name looked up when none is given.
const DefaultName = "htmlindex"

// Field length limits.
const (
	MaxLangLength        = 35   // BCP 47 tags rarely exceed this
	MaxTitleLength       = 200  // Document title
	MaxDescriptionLength = 500  // Meta description
	MaxColorLength       = 50   // "#ffffff", "rgb(...)", color names
	MaxURLLength         = 2048 // Browser limit
	MaxStyleNameLength   = 50   // Chroma style name
	MaxAddrLength        = 255  // host:port
	MaxEntries           = 256  // Per scripts/styles/fonts list
)

// Loading strategies. Inline entries have no strategy field.
const (
	StrategyDefer    = "defer"
	StrategyBlocking = "blocking"
	StrategyLazy     = "lazy"
	StrategyAsync    = "async"
	StrategyInline   = "inline"
)

// Config is a document manifest.
type Config struct {
	Lang        string `yaml:"lang"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ThemeColor  string `yaml:"themeColor"`
	Favicon     string `yaml:"favicon"`
	Manifest    string `yaml:"manifest"`

	Body    BodyConfig    `yaml:"body"`
	Scripts []ScriptEntry `yaml:"scripts"`
	Styles  []StyleEntry  `yaml:"styles"`
	Fonts   []string      `yaml:"fonts"`

	Assets AssetsConfig `yaml:"assets"`
	PDF    PDFConfig    `yaml:"pdf"`
	Serve  ServeConfig  `yaml:"serve"`

	// Path is the file the manifest was loaded from. Empty for
	// DefaultConfig.
	Path string `yaml:"-"`
}

// BodyConfig selects the body source. At most one of Raw, File and
// Markdown may be set.
type BodyConfig struct {
	Raw            string `yaml:"raw"`            // Literal markup, usually "<body>...</body>"
	File           string `yaml:"file"`           // HTML file holding the body element
	Markdown       string `yaml:"markdown"`       // Markdown file rendered into <body>
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for markdown code blocks
}

// ScriptEntry is one element of the scripts list. Exactly one of Src and
// Inline is set.
type ScriptEntry struct {
	Src      string `yaml:"src"`
	Inline   string `yaml:"inline"`
	Strategy string `yaml:"strategy"` // "defer" (default), "blocking", "lazy"
}

// StyleEntry is one element of the styles list. Exactly one of Href,
// Inline and Builtin is set. Builtin names a stylesheet from the asset
// loader, inlined into the document.
type StyleEntry struct {
	Href     string `yaml:"href"`
	Inline   string `yaml:"inline"`
	Builtin  string `yaml:"builtin"`
	Strategy string `yaml:"strategy"` // "async" (default), "blocking"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = embedded assets only
}

// PDFConfig defines PDF snapshot page settings in inches. Zero values
// fall back to US Letter with half-inch margins.
type PDFConfig struct {
	PaperWidth  float64 `yaml:"paperWidth"`
	PaperHeight float64 `yaml:"paperHeight"`
	Margin      float64 `yaml:"margin"`
}

// ServeConfig defines development server options.
type ServeConfig struct {
	Addr string `yaml:"addr"` // default ":8080"
}

// EffectiveStrategy returns the strategy applied to the entry.
func (s ScriptEntry) EffectiveStrategy() string {
	if s.Inline != "" {
		return StrategyInline
	}
	if s.Strategy == "" {
		return StrategyDefer
	}
	return strings.ToLower(s.Strategy)
}

// EffectiveStrategy returns the strategy applied to the entry.
func (s StyleEntry) EffectiveStrategy() string {
	if s.Inline != "" || s.Builtin != "" {
		return StrategyInline
	}
	if s.Strategy == "" {
		return StrategyAsync
	}
	return strings.ToLower(s.Strategy)
}

// Dir returns the directory relative body paths resolve against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// ResolvePath makes a manifest-relative path usable from the working
// directory. Absolute paths are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Validate checks field lengths, body source exclusivity and strategy
// names. Called automatically by LoadConfig, but available for
// consumers who construct Config manually. Every failure is reported in
// one error joined with errors.Join, so errors.Is matches each sentinel.
func (c *Config) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"lang", c.Lang, MaxLangLength},
		{"title", c.Title, MaxTitleLength},
		{"description", c.Description, MaxDescriptionLength},
		{"themeColor", c.ThemeColor, MaxColorLength},
		{"favicon", c.Favicon, MaxURLLength},
		{"manifest", c.Manifest, MaxURLLength},
		{"body.file", c.Body.File, MaxURLLength},
		{"body.markdown", c.Body.Markdown, MaxURLLength},
		{"body.highlightStyle", c.Body.HighlightStyle, MaxStyleNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxURLLength},
		{"serve.addr", c.Serve.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		check(validateFieldLength(f.name, f.value, f.max))
	}

	check(c.Body.validate())

	check(validateCount("scripts", len(c.Scripts)))
	for i, s := range c.Scripts {
		check(s.validate(i))
	}

	check(validateCount("styles", len(c.Styles)))
	for i, s := range c.Styles {
		check(s.validate(i))
	}

	check(validateCount("fonts", len(c.Fonts)))
	for i, f := range c.Fonts {
		name := fmt.Sprintf("fonts[%d]", i)
		if f == "" {
			check(fmt.Errorf("%w: %s: empty path", ErrInvalidConfig, name))
			continue
		}
		check(validateFieldLength(name, f, MaxURLLength))
	}

	check(c.PDF.validate())

	return errors.Join(errs...)
}

func (b BodyConfig) validate() error {
	set := 0
	for _, v := range []string{b.Raw, b.File, b.Markdown} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: body: set only one of raw, file, markdown", ErrInvalidConfig)
	}
	if b.HighlightStyle != "" && b.Markdown == "" {
		return fmt.Errorf("%w: body.highlightStyle: requires body.markdown", ErrInvalidConfig)
	}
	return nil
}

func (s ScriptEntry) validate(i int) error {
	name := fmt.Sprintf("scripts[%d]", i)
	if (s.Src == "") == (s.Inline == "") {
		return fmt.Errorf("%w: %s: set exactly one of src, inline", ErrInvalidConfig, name)
	}
	if err := validateFieldLength(name+".src", s.Src, MaxURLLength); err != nil {
		return err
	}
	if s.Inline != "" {
		if s.Strategy != "" {
			return fmt.Errorf("%w: %s.strategy: not allowed for inline scripts", ErrInvalidConfig, name)
		}
		return nil
	}
	switch s.EffectiveStrategy() {
	case StrategyDefer, StrategyBlocking, StrategyLazy:
		return nil
	default:
		return fmt.Errorf("%w: %s.strategy: invalid value %q (must be defer, blocking, or lazy)", ErrInvalidConfig, name, s.Strategy)
	}
}

func (s StyleEntry) validate(i int) error {
	name := fmt.Sprintf("styles[%d]", i)
	set := 0
	for _, v := range []string{s.Href, s.Inline, s.Builtin} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: %s: set exactly one of href, inline, builtin", ErrInvalidConfig, name)
	}
	if err := validateFieldLength(name+".href", s.Href, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength(name+".builtin", s.Builtin, MaxStyleNameLength); err != nil {
		return err
	}
	if s.Inline != "" || s.Builtin != "" {
		if s.Strategy != "" {
			return fmt.Errorf("%w: %s.strategy: not allowed for inline styles", ErrInvalidConfig, name)
		}
		return nil
	}
	switch s.EffectiveStrategy() {
	case StrategyAsync, StrategyBlocking:
		return nil
	default:
		return fmt.Errorf("%w: %s.strategy: invalid value %q (must be async or blocking)", ErrInvalidConfig, name, s.Strategy)
	}
}

func (p PDFConfig) validate() error {
	if p.PaperWidth < 0 || p.PaperHeight < 0 || p.Margin < 0 {
		return fmt.Errorf("%w: pdf: dimensions must not be negative", ErrInvalidConfig)
	}
	width, height := p.PaperWidth, p.PaperHeight
	if width == 0 {
		width = 8.5
	}
	if height == 0 {
		height = 11
	}
	if p.Margin*2 >= width || p.Margin*2 >= height {
		return fmt.Errorf("%w: pdf.margin: %.2f leaves no printable area", ErrInvalidConfig, p.Margin)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateCount(fieldName string, n int) error {
	if n > MaxEntries {
		return fmt.Errorf("%w: %s has %d entries, max %d", ErrInvalidConfig, fieldName, n, MaxEntries)
	}
	return nil
}

// DefaultConfig returns an empty manifest: no body, no resources.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads a manifest from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Path = configPath
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/htmlindex/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "htmlindex", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
