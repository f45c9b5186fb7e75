package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-htmlindex/internal/yamlutil"
)

// ErrFrontMatter indicates a front matter block could not be parsed.
var ErrFrontMatter = errors.New("invalid front matter")

const frontMatterDelim = "---"

// FrontMatter holds the document fields a Markdown file may declare in a
// leading YAML block.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Lang        string `yaml:"lang"`
	ThemeColor  string `yaml:"themeColor"`
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown content. Content without front matter is returned unchanged
// with a zero FrontMatter. Unknown keys are ignored.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterDelim+"\n") {
		return fm, content, nil
	}

	// keep the newline so an empty block still matches "\n---"
	rest := normalized[len(frontMatterDelim):]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end == -1 {
		return fm, "", fmt.Errorf("%w: missing closing %q", ErrFrontMatter, frontMatterDelim)
	}

	block := rest[:end]
	body := rest[end+len(frontMatterDelim)+1:]
	// drop the remainder of the closing delimiter line
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	if strings.TrimSpace(block) == "" {
		return fm, body, nil
	}
	if err := yamlutil.Unmarshal([]byte(block), &fm); err != nil {
		return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, body, nil
}
