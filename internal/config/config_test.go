package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Title != "" || cfg.Lang != "" {
		t.Errorf("DefaultConfig() should leave singletons empty, got %+v", cfg)
	}
	if len(cfg.Scripts)+len(cfg.Styles)+len(cfg.Fonts) != 0 {
		t.Error("DefaultConfig() should have no resources")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.Dir() != "." {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), ".")
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "full manifest is valid",
			cfg: Config{
				Lang:  "fr-FR",
				Title: "Accueil",
				Body:  BodyConfig{Markdown: "README.md", HighlightStyle: "github"},
				Scripts: []ScriptEntry{
					{Src: "/a.js"},
					{Src: "/b.js", Strategy: "blocking"},
					{Src: "/c.js", Strategy: "LAZY"},
					{Inline: "console.log(1)"},
				},
				Styles: []StyleEntry{
					{Href: "/a.css"},
					{Href: "/b.css", Strategy: "blocking"},
					{Inline: "body{}"},
					{Builtin: "default"},
				},
				Fonts:  []string{"/f.woff2"},
				Assets: AssetsConfig{BasePath: "./theme"},
				PDF:    PDFConfig{PaperWidth: 8.27, PaperHeight: 11.69, Margin: 1},
			},
		},
		{
			name:    "title too long",
			cfg:     Config{Title: strings.Repeat("x", MaxTitleLength+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "lang too long",
			cfg:     Config{Lang: strings.Repeat("x", MaxLangLength+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "two body sources",
			cfg:     Config{Body: BodyConfig{Raw: "<body></body>", File: "body.html"}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "highlight style without markdown",
			cfg:     Config{Body: BodyConfig{File: "body.html", HighlightStyle: "github"}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "script without src or inline",
			cfg:     Config{Scripts: []ScriptEntry{{Strategy: "defer"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "script with src and inline",
			cfg:     Config{Scripts: []ScriptEntry{{Src: "/a.js", Inline: "x"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "inline script with strategy",
			cfg:     Config{Scripts: []ScriptEntry{{Inline: "x", Strategy: "defer"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown script strategy",
			cfg:     Config{Scripts: []ScriptEntry{{Src: "/a.js", Strategy: "async"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown style strategy",
			cfg:     Config{Styles: []StyleEntry{{Href: "/a.css", Strategy: "lazy"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "style with href and builtin",
			cfg:     Config{Styles: []StyleEntry{{Href: "/a.css", Builtin: "default"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "builtin style with strategy",
			cfg:     Config{Styles: []StyleEntry{{Builtin: "default", Strategy: "blocking"}}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "style src too long",
			cfg:     Config{Styles: []StyleEntry{{Href: strings.Repeat("x", MaxURLLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "empty font",
			cfg:     Config{Fonts: []string{""}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "too many fonts",
			cfg:     Config{Fonts: make([]string, MaxEntries+1)},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative paper width",
			cfg:     Config{PDF: PDFConfig{PaperWidth: -1}},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "margin eats the page",
			cfg:     Config{PDF: PDFConfig{Margin: 5}},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Title:   strings.Repeat("x", MaxTitleLength+300),
		Body:    BodyConfig{Raw: "<body></body>", File: "body.html"},
		Scripts: []ScriptEntry{{Src: "/a.js", Strategy: "bogus"}},
		Fonts:   []string{""},
		PDF:     PDFConfig{Margin: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	if !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("Validate() error should match ErrFieldTooLong: %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() error should match ErrInvalidConfig: %v", err)
	}
	for _, field := range []string{"title", "body", "scripts[0]", "fonts[0]", "pdf"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error missing %q:\n%v", field, err)
		}
	}
	if n := len(strings.Split(err.Error(), "\n")); n != 5 {
		t.Errorf("Validate() reported %d problems, want 5:\n%v", n, err)
	}
}

func TestEffectiveStrategy(t *testing.T) {
	t.Parallel()

	scripts := []struct {
		entry ScriptEntry
		want  string
	}{
		{ScriptEntry{Src: "/a.js"}, StrategyDefer},
		{ScriptEntry{Src: "/a.js", Strategy: "Blocking"}, StrategyBlocking},
		{ScriptEntry{Src: "/a.js", Strategy: "lazy"}, StrategyLazy},
		{ScriptEntry{Inline: "x"}, StrategyInline},
	}
	for _, tt := range scripts {
		if got := tt.entry.EffectiveStrategy(); got != tt.want {
			t.Errorf("%+v.EffectiveStrategy() = %q, want %q", tt.entry, got, tt.want)
		}
	}

	styles := []struct {
		entry StyleEntry
		want  string
	}{
		{StyleEntry{Href: "/a.css"}, StrategyAsync},
		{StyleEntry{Href: "/a.css", Strategy: "blocking"}, StrategyBlocking},
		{StyleEntry{Inline: "x"}, StrategyInline},
		{StyleEntry{Builtin: "default"}, StrategyInline},
	}
	for _, tt := range styles {
		if got := tt.entry.EffectiveStrategy(); got != tt.want {
			t.Errorf("%+v.EffectiveStrategy() = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestConfig_ResolvePath(t *testing.T) {
	t.Parallel()

	abs := filepath.Join(t.TempDir(), "abs.md")
	cfg := &Config{Path: filepath.Join("site", "htmlindex.yaml")}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"README.md", filepath.Join("site", "README.md")},
		{abs, abs},
	}
	for _, tt := range tests {
		if got := cfg.ResolvePath(tt.in); got != tt.want {
			t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads manifest in order", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "site.yaml", `lang: de
title: "Start"
themeColor: "#112233"
body:
  markdown: README.md
  highlightStyle: monokai
scripts:
  - src: /vendor.js
    strategy: blocking
  - inline: "window.x = 1"
  - src: /app.js
styles:
  - href: /app.css
  - inline: "body{margin:0}"
fonts:
  - /inter.woff2
serve:
  addr: ":9000"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Lang != "de" || cfg.Title != "Start" || cfg.ThemeColor != "#112233" {
			t.Errorf("singletons = %q %q %q", cfg.Lang, cfg.Title, cfg.ThemeColor)
		}
		if cfg.Body.Markdown != "README.md" || cfg.Body.HighlightStyle != "monokai" {
			t.Errorf("Body = %+v", cfg.Body)
		}
		wantScripts := []ScriptEntry{
			{Src: "/vendor.js", Strategy: "blocking"},
			{Inline: "window.x = 1"},
			{Src: "/app.js"},
		}
		if len(cfg.Scripts) != len(wantScripts) {
			t.Fatalf("Scripts = %+v, want %+v", cfg.Scripts, wantScripts)
		}
		for i := range wantScripts {
			if cfg.Scripts[i] != wantScripts[i] {
				t.Errorf("Scripts[%d] = %+v, want %+v", i, cfg.Scripts[i], wantScripts[i])
			}
		}
		if len(cfg.Styles) != 2 || cfg.Styles[1].Inline != "body{margin:0}" {
			t.Errorf("Styles = %+v", cfg.Styles)
		}
		if len(cfg.Fonts) != 1 || cfg.Serve.Addr != ":9000" {
			t.Errorf("Fonts = %v, Serve = %+v", cfg.Fonts, cfg.Serve)
		}
		if cfg.Path != path {
			t.Errorf("Path = %q, want %q", cfg.Path, path)
		}
		if cfg.ResolvePath("README.md") != filepath.Join(filepath.Dir(path), "README.md") {
			t.Errorf("ResolvePath should be relative to the manifest")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "title: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "title: x\nunknownField: y\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid strategy is rejected after parsing", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "scripts:\n  - src: /a.js\n    strategy: eager\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		content := "description: \"" + strings.Repeat("x", MaxDescriptionLength+1) + "\"\n"
		path := writeConfig(t, t.TempDir(), "toolong.yaml", content)
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("name is resolved in the working directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "site.yml", "title: From cwd\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Title != "From cwd" {
			t.Errorf("Title = %q, want %q", cfg.Title, "From cwd")
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing-manifest")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing-manifest.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"htmlindex", false},
		{"site", false},
		{"./site", true},
		{"dir/site.yaml", true},
		{`dir\site.yaml`, true},
		{"site.yaml", true},
		{"site.yml", true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.in); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
