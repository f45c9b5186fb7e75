package pipeline

import (
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle indicates the highlight style is not registered in chroma.
var ErrUnknownStyle = errors.New("unknown highlight style")

// HighlightCSS returns the stylesheet for the chroma classes emitted by
// GoldmarkConverter, rendered with the named chroma style.
func HighlightCSS(name string) (string, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", name, err)
	}
	return buf.String(), nil
}

// HighlightStyles lists the registered chroma style names.
func HighlightStyles() []string {
	return styles.Names()
}
