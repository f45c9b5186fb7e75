package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrBodyConversion indicates Markdown to body conversion failed.
var ErrBodyConversion = errors.New("body conversion failed")

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Body wrapper around Goldmark's fragment output.
const (
	bodyOpen  = "<body>"
	bodyClose = "</body>"
)

// BodyConverter abstracts Markdown to body fragment conversion.
type BodyConverter interface {
	ToBody(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to a body fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting (see HighlightCSS for the stylesheet).
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			MarkExtension,      // ==highlight==
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe is not set: raw HTML in Markdown is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToBody converts Markdown content to a "<body>...</body>" fragment.
// Supports context cancellation via goroutine + select since Goldmark
// doesn't natively support context.
func (c *GoldmarkConverter) ToBody(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(lineEndings.Replace(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrBodyConversion, err)}
			return
		}
		fragment := strings.TrimRight(buf.String(), "\n")
		done <- result{body: bodyOpen + fragment + bodyClose}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.body, r.err
	}
}
