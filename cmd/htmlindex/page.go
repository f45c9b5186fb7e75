package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	htmlindex "github.com/alnah/go-htmlindex"
	"github.com/alnah/go-htmlindex/internal/assets"
	"github.com/alnah/go-htmlindex/internal/config"
)

// page is a manifest with every external source resolved. It holds no
// Builder: each call to builder assembles a fresh one, so a page can be
// rendered any number of times.
type page struct {
	cfg          *config.Config
	front        htmlindex.FrontMatter
	body         string
	highlightCSS string
	builtin      map[int]string // style index -> stylesheet
	sources      []string       // manifest, body and custom style files
}

// loadPage reads the body source and builtin stylesheets named by cfg.
func loadPage(ctx context.Context, cfg *config.Config) (*page, error) {
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	p := &page{cfg: cfg, builtin: make(map[int]string)}
	if cfg.Path != "" {
		p.sources = append(p.sources, cfg.Path)
	}

	switch {
	case cfg.Body.Raw != "":
		p.body = cfg.Body.Raw

	case cfg.Body.File != "":
		// The file holds the body element itself and is used verbatim
		data, path, err := p.readSource(cfg.Body.File)
		if err != nil {
			return nil, err
		}
		p.body = data
		p.sources = append(p.sources, path)

	case cfg.Body.Markdown != "":
		data, path, err := p.readSource(cfg.Body.Markdown)
		if err != nil {
			return nil, err
		}
		p.sources = append(p.sources, path)

		front, content, err := htmlindex.SplitFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		body, err := htmlindex.MarkdownBody(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.front = front
		p.body = body

		if cfg.Body.HighlightStyle != "" {
			css, err := htmlindex.HighlightCSS(cfg.Body.HighlightStyle)
			if err != nil {
				return nil, err
			}
			p.highlightCSS = css
		}
	}

	for i, s := range cfg.Styles {
		if s.Builtin == "" {
			continue
		}
		style, err := loader.ResolveStyle(s.Builtin)
		if err != nil {
			return nil, fmt.Errorf("styles[%d]: %w", i, err)
		}
		p.builtin[i] = style.CSS
		if style.Path != "" && !slices.Contains(p.sources, style.Path) {
			p.sources = append(p.sources, style.Path)
		}
	}

	return p, nil
}

// readSource reads a manifest-relative file.
func (p *page) readSource(name string) (content, path string, err error) {
	path = p.cfg.ResolvePath(name)
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's manifest
	if err != nil {
		return "", path, fmt.Errorf("%w: %v", ErrReadBody, err)
	}
	return string(data), path, nil
}

// builder assembles a fresh Builder. Manifest entries keep file order;
// front matter only fills document fields the manifest leaves empty.
func (p *page) builder() *htmlindex.Builder {
	cfg := p.cfg
	b := htmlindex.New()

	if lang := firstNonEmpty(cfg.Lang, p.front.Lang); lang != "" {
		b.Lang(lang)
	}
	if title := firstNonEmpty(cfg.Title, p.front.Title); title != "" {
		b.Title(title)
	}
	if desc := firstNonEmpty(cfg.Description, p.front.Description); desc != "" {
		b.Description(desc)
	}
	if color := firstNonEmpty(cfg.ThemeColor, p.front.ThemeColor); color != "" {
		b.ThemeColor(color)
	}
	if cfg.Favicon != "" {
		b.Favicon(cfg.Favicon)
	}
	if cfg.Manifest != "" {
		b.Manifest(cfg.Manifest)
	}

	for _, s := range cfg.Scripts {
		switch s.EffectiveStrategy() {
		case config.StrategyInline:
			b.InlineScript(s.Inline)
		case config.StrategyBlocking:
			b.BlockingScript(s.Src)
		case config.StrategyLazy:
			b.LazyScript(s.Src)
		default:
			b.Script(s.Src)
		}
	}

	if p.highlightCSS != "" {
		b.InlineStyle(p.highlightCSS)
	}
	for i, s := range cfg.Styles {
		switch {
		case s.Builtin != "":
			b.InlineStyle(p.builtin[i])
		case s.Inline != "":
			b.InlineStyle(s.Inline)
		case s.EffectiveStrategy() == config.StrategyBlocking:
			b.BlockingStyle(s.Href)
		default:
			b.Style(s.Href)
		}
	}

	for _, f := range cfg.Fonts {
		b.Font(f)
	}

	if p.body != "" {
		b.RawBody(p.body)
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
