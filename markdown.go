package htmlindex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-htmlindex/internal/pipeline"
)

// FrontMatter holds document fields declared in a leading YAML block of a
// Markdown source.
type FrontMatter = pipeline.FrontMatter

var defaultBodyConverter pipeline.BodyConverter = pipeline.NewGoldmarkConverter()

// MarkdownBody converts Markdown to a "<body>...</body>" fragment ready for
// RawBody. GitHub Flavored Markdown, footnotes and ==highlight== marks are
// supported; fenced code is highlighted with chroma CSS classes (see
// HighlightCSS). Raw HTML in the source is omitted.
func MarkdownBody(ctx context.Context, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", ErrEmptyMarkdown
	}

	body, err := defaultBodyConverter.ToBody(ctx, markdown)
	if err != nil {
		if errors.Is(err, pipeline.ErrBodyConversion) {
			return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
		}
		return "", err
	}
	return body, nil
}

// SplitFrontMatter separates an optional leading "---" YAML block from a
// Markdown source and returns the remaining content.
func SplitFrontMatter(markdown string) (FrontMatter, string, error) {
	fm, rest, err := pipeline.SplitFrontMatter(markdown)
	if err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, rest, nil
}

// HighlightCSS returns the chroma stylesheet for the named style, suitable
// for InlineStyle next to a MarkdownBody containing code blocks.
func HighlightCSS(style string) (string, error) {
	css, err := pipeline.HighlightCSS(style)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownStyle) {
			return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
		}
		return "", err
	}
	return css, nil
}

// HighlightStyles lists the style names accepted by HighlightCSS.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
