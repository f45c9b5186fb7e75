package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Notes:
// - ResolveForPrint: runs on assembled documents, so every case is a full
//   <!DOCTYPE html> page. html.Render normalizes void tags and attribute
//   quoting, so assertions look for substrings, not exact output.
// - Windows drive paths are only exercised through pathToFileURL.

func testDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		return `C:\site`
	}
	return "/site"
}

func page(head, body string) string {
	return "<!DOCTYPE html><html lang=\"en\"><head>" + head + "</head><body>" + body + "</body></html>"
}

// ---------------------------------------------------------------------------
// TestResolveForPrint - Resource References
// ---------------------------------------------------------------------------

func TestResolveForPrint(t *testing.T) {
	t.Parallel()

	dir := testDir(t)
	fileURL := pathToFileURL(dir)

	tests := []struct {
		name     string
		document string
		want     []string
		wantNot  []string
	}{
		{
			name:     "stylesheet link",
			document: page(`<link rel="stylesheet" href="css/app.css">`, ""),
			want:     []string{`href="` + fileURL + `/css/app.css"`},
		},
		{
			name:     "preload font",
			document: page(`<link rel="preload" href="./fonts/inter.woff2" as="font" crossorigin>`, ""),
			want:     []string{`href="` + fileURL + `/fonts/inter.woff2"`},
		},
		{
			name:     "favicon and manifest",
			document: page(`<link rel="manifest" href="site.webmanifest"><link rel="icon" href="favicon.png">`, ""),
			want: []string{
				`href="` + fileURL + `/site.webmanifest"`,
				`href="` + fileURL + `/favicon.png"`,
			},
		},
		{
			name:     "script src",
			document: page(`<script src="js/app.js" defer></script>`, ""),
			want:     []string{`src="` + fileURL + `/js/app.js"`},
		},
		{
			name:     "body image",
			document: page("", `<img src="images/logo.png" alt="logo">`),
			want:     []string{`src="` + fileURL + `/images/logo.png"`},
		},
		{
			name:     "query and fragment dropped",
			document: page(`<link rel="stylesheet" href="css/app.css?v=3#x">`, ""),
			want:     []string{`href="` + fileURL + `/css/app.css"`},
			wantNot:  []string{"v=3"},
		},
		{
			name:     "root-relative kept",
			document: page(`<script src="/js/app.js"></script>`, ""),
			want:     []string{`src="/js/app.js"`},
		},
		{
			name:     "remote kept",
			document: page(`<link rel="stylesheet" href="https://cdn.example.com/a.css">`, ""),
			want:     []string{`href="https://cdn.example.com/a.css"`},
		},
		{
			name:     "protocol-relative kept",
			document: page(`<script src="//cdn.example.com/a.js"></script>`, ""),
			want:     []string{`src="//cdn.example.com/a.js"`},
		},
		{
			name:     "anchor kept",
			document: page("", `<a href="#top">top</a>`),
			want:     []string{`href="#top"`},
		},
		{
			name:     "data URI kept",
			document: page("", `<img src="data:image/png;base64,AAAA">`),
			want:     []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:     "inline script untouched",
			document: page(`<script>var src = "js/app.js";</script>`, ""),
			want:     []string{`var src = "js/app.js";`},
			wantNot:  []string{"file://"},
		},
		{
			name:     "other elements untouched",
			document: page("", `<iframe src="frame.html"></iframe>`),
			want:     []string{`src="frame.html"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveForPrint(tt.document, dir)
			if err != nil {
				t.Fatalf("ResolveForPrint() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("ResolveForPrint() = %q, want to contain %q", got, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("ResolveForPrint() = %q, should not contain %q", got, not)
				}
			}
		})
	}
}

func TestResolveForPrint_EmptyDir(t *testing.T) {
	t.Parallel()

	doc := page(`<link rel="stylesheet" href="css/app.css">`, "")
	got, err := ResolveForPrint(doc, "")
	if err != nil {
		t.Fatalf("ResolveForPrint() error = %v", err)
	}
	if got != doc {
		t.Errorf("ResolveForPrint() = %q, want input unchanged", got)
	}
}

func TestResolveForPrint_KeepsStructure(t *testing.T) {
	t.Parallel()

	got, err := ResolveForPrint(page(`<title>Report</title>`, `<main>x</main>`), testDir(t))
	if err != nil {
		t.Fatalf("ResolveForPrint() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `<html lang="en">`, "<title>Report</title>", "<main>x</main>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ResolveForPrint() = %q, want to contain %q", got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestResolveForPrint_Traversal - Paths Escaping the Manifest Directory
// ---------------------------------------------------------------------------

func TestResolveForPrint_Traversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"parent escape", "../../etc/passwd", `src="../../etc/passwd"`},
		{"escape through subdir", "js/../../../etc/passwd", `src="js/../../../etc/passwd"`},
		{"subdir back inside", "js/../app.js", `src="file://`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveForPrint(page(`<script src="`+tt.ref+`"></script>`, ""), testDir(t))
			if err != nil {
				t.Fatalf("ResolveForPrint() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ResolveForPrint() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestIsRelativeRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"./app.css", true},
		{"css/app.css", true},
		{"../shared.css", true},
		{"app.css?v=1", true},
		{"", false},
		{"#top", false},
		{"/css/app.css", false},
		{"//cdn.example.com/a.js", false},
		{"https://example.com/a.js", false},
		{"file:///site/a.js", false},
		{"data:text/css,body{}", false},
		{"mailto:someone@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			if got := isRelativeRef(tt.ref); got != tt.want {
				t.Errorf("isRelativeRef(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		dir     string
		want    bool
	}{
		{"child", "/site/app.css", "/site", true},
		{"nested", "/site/css/app.css", "/site", true},
		{"dir itself", "/site", "/site", true},
		{"trailing slash", "/site/app.css", "/site/", true},
		{"outside", "/etc/passwd", "/site", false},
		{"shared prefix", "/site-old/app.css", "/site", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			absPath := filepath.FromSlash(tt.absPath)
			dir := filepath.FromSlash(tt.dir)
			if got := isPathUnderDir(absPath, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", absPath, dir, got, tt.want)
			}
		})
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		absPath string
		want    string
	}{
		{"plain", "/site/css/app.css", "file:///site/css/app.css"},
		{"spaces", "/my site/app.css", "file:///my%20site/app.css"},
		{"drive letter", "C:/site/app.css", "file:///C:/site/app.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := pathToFileURL(tt.absPath); got != tt.want {
				t.Errorf("pathToFileURL(%q) = %q, want %q", tt.absPath, got, tt.want)
			}
		})
	}
}
