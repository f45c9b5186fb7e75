package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// printAttrs lists the resource attributes rewritten per element.
var printAttrs = map[string]string{
	"link":   "href",
	"script": "src",
	"img":    "src",
	"a":      "href",
}

// ResolveForPrint rewrites relative resource URLs in an assembled document
// to file:// URLs under baseDir, so the document still finds its
// stylesheets, scripts, fonts and images when printed from a temporary
// file. An empty baseDir returns the document unchanged.
//
// URLs with a scheme, root-relative and protocol-relative URLs, anchors,
// and paths escaping baseDir are left alone.
func ResolveForPrint(document, baseDir string) (string, error) {
	if baseDir == "" {
		return document, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}
	resolveNode(doc, absDir)

	var buf strings.Builder
	buf.Grow(len(document))
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func resolveNode(n *html.Node, dir string) {
	if n.Type == html.ElementNode {
		if key, ok := printAttrs[n.Data]; ok {
			for i, a := range n.Attr {
				if a.Key == key {
					if resolved, ok := resolveRelative(a.Val, dir); ok {
						n.Attr[i].Val = resolved
					}
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, dir)
	}
}

// resolveRelative returns the file:// URL for a relative reference.
func resolveRelative(ref, dir string) (string, bool) {
	if !isRelativeRef(ref) {
		return "", false
	}
	// drop query and fragment before touching the filesystem path
	path := ref
	if i := strings.IndexAny(path, "?#"); i != -1 {
		path = path[:i]
	}
	abs := filepath.Join(dir, filepath.FromSlash(path))
	if !isPathUnderDir(abs, dir) {
		return "", false
	}
	return pathToFileURL(abs), true
}

// isRelativeRef reports whether ref is a document-relative reference.
func isRelativeRef(ref string) bool {
	switch {
	case ref == "",
		strings.HasPrefix(ref, "#"),
		strings.HasPrefix(ref, "/"),
		strings.HasPrefix(ref, `\`),
		filepath.IsAbs(ref):
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// isPathUnderDir reports whether absPath is dir or inside it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	// Windows drive paths need a leading slash: file:///C:/x
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
