package main

// Notes:
// - runBuild: we test stdout and file output, PDF rendering through a fake
//   renderer, and override precedence (flags > env > manifest).
// - Real PDF printing is covered by the root package integration test.

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	htmlindex "github.com/alnah/go-htmlindex"
)

const buildManifest = `title: Build Test
description: checks
body:
  raw: "<body><p>ok</p></body>"
scripts:
  - src: /app.js
pdf:
  paperWidth: 8.27
  paperHeight: 11.69
  margin: 1
`

// ---------------------------------------------------------------------------
// TestRunBuild - Document output
// ---------------------------------------------------------------------------

func TestRunBuild(t *testing.T) {
	t.Parallel()

	wantDoc := headPrefix +
		`<title>Build Test</title>` +
		`<meta name="description" content="checks">` +
		`<script src="/app.js" defer></script>` +
		`</head><body><p>ok</p></body></html>`

	t.Run("writes to stdout by default", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "site.yaml", buildManifest)
		te := newTestEnv(t)

		if err := runBuild(context.Background(), []string{path}, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		if te.stdout.String() != wantDoc {
			t.Errorf("stdout =\n%s\nwant\n%s", te.stdout.String(), wantDoc)
		}
	})

	t.Run("writes to output file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "site.yaml", buildManifest)
		out := filepath.Join(dir, "index.html")
		te := newTestEnv(t)

		if err := runBuild(context.Background(), []string{"-c", path, "-o", out}, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(data) != wantDoc {
			t.Errorf("output =\n%s\nwant\n%s", data, wantDoc)
		}
		if !strings.Contains(te.stdout.String(), "Created "+out) {
			t.Errorf("stdout = %q, want Created line", te.stdout.String())
		}
	})

	t.Run("quiet suppresses status", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "site.yaml", buildManifest)
		te := newTestEnv(t)

		args := []string{path, "-o", filepath.Join(dir, "out.html"), "-q"}
		if err := runBuild(context.Background(), args, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		if te.stdout.Len() != 0 || te.stderr.Len() != 0 {
			t.Errorf("expected no output, got stdout=%q stderr=%q", te.stdout.String(), te.stderr.String())
		}
	})

	t.Run("flags override manifest", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "site.yaml", buildManifest)
		te := newTestEnv(t)

		args := []string{path, "--title", "Flag Title", "--lang", "de"}
		if err := runBuild(context.Background(), args, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		got := te.stdout.String()
		if !strings.Contains(got, `<html lang="de">`) || !strings.Contains(got, "<title>Flag Title</title>") {
			t.Errorf("stdout = %s", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunBuild_PDF - PDF snapshot through the renderer
// ---------------------------------------------------------------------------

func TestRunBuild_PDF(t *testing.T) {
	t.Parallel()

	t.Run("renders with manifest page settings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "site.yaml", buildManifest)
		pdf := filepath.Join(dir, "site.pdf")
		te := newTestEnv(t)

		args := []string{path, "-o", filepath.Join(dir, "index.html"), "--pdf", pdf, "--timeout", "7s"}
		if err := runBuild(context.Background(), args, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}

		data, err := os.ReadFile(pdf)
		if err != nil {
			t.Fatalf("reading pdf: %v", err)
		}
		if !strings.HasPrefix(string(data), "%PDF-") {
			t.Errorf("pdf = %q", data)
		}

		r := te.renderer
		if !r.closed {
			t.Error("renderer should be closed")
		}
		if r.timeout != 7*time.Second {
			t.Errorf("timeout = %v, want 7s", r.timeout)
		}
		if !strings.Contains(r.doc, "<title>Build Test</title>") {
			t.Errorf("renderer got document %q", r.doc)
		}
		want := htmlindex.PDFOptions{PaperWidth: 8.27, PaperHeight: 11.69, Margin: 1}
		if r.opts == nil || *r.opts != want {
			t.Errorf("opts = %+v, want %+v", r.opts, want)
		}
	})

	t.Run("relative references resolve against manifest dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		manifest := "title: Print\nbody:\n  raw: \"<body><img src=\\\"img/logo.png\\\"></body>\"\n" +
			"scripts:\n  - src: js/app.js\n  - src: /root.js\n"
		path := writeFile(t, dir, "site.yaml", manifest)
		te := newTestEnv(t)

		args := []string{path, "-o", filepath.Join(dir, "index.html"), "--pdf", filepath.Join(dir, "site.pdf")}
		if err := runBuild(context.Background(), args, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}

		html, err := os.ReadFile(filepath.Join(dir, "index.html"))
		if err != nil {
			t.Fatalf("reading html: %v", err)
		}
		if !strings.Contains(string(html), `<script src="js/app.js" defer></script>`) {
			t.Errorf("html output should keep relative src, got %s", html)
		}

		base := (&url.URL{Scheme: "file", Path: filepath.ToSlash(dir)}).String()
		for _, want := range []string{
			`src="` + base + `/js/app.js"`,
			`src="` + base + `/img/logo.png"`,
			`src="/root.js"`,
		} {
			if !strings.Contains(te.renderer.doc, want) {
				t.Errorf("renderer document missing %q:\n%s", want, te.renderer.doc)
			}
		}
	})

	t.Run("renderer failure is returned", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "site.yaml", buildManifest)
		te := newTestEnv(t)
		te.renderer.err = htmlindex.ErrBrowserConnect

		args := []string{path, "--pdf", filepath.Join(dir, "site.pdf")}
		err := runBuild(context.Background(), args, te.Environment)
		if !errors.Is(err, htmlindex.ErrBrowserConnect) {
			t.Errorf("error = %v, want ErrBrowserConnect", err)
		}
		if exitCodeFor(err) != ExitBrowser {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitBrowser)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunBuild_Env - Environment overrides
// ---------------------------------------------------------------------------

func TestRunBuild_Env(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", buildManifest)

	t.Run("env overrides manifest", func(t *testing.T) {
		t.Setenv("HTMLINDEX_CONFIG", path)
		t.Setenv("HTMLINDEX_TITLE", "Env Title")
		te := newTestEnv(t)

		if err := runBuild(context.Background(), nil, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		if !strings.Contains(te.stdout.String(), "<title>Env Title</title>") {
			t.Errorf("stdout = %s", te.stdout.String())
		}
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("HTMLINDEX_TITLE", "Env Title")
		te := newTestEnv(t)

		if err := runBuild(context.Background(), []string{path, "--title", "Flag"}, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		if !strings.Contains(te.stdout.String(), "<title>Flag</title>") {
			t.Errorf("stdout = %s", te.stdout.String())
		}
	})

	t.Run("env timeout used without flag", func(t *testing.T) {
		t.Setenv("HTMLINDEX_TIMEOUT", "90s")
		te := newTestEnv(t)

		args := []string{path, "--pdf", filepath.Join(dir, "env.pdf")}
		if err := runBuild(context.Background(), args, te.Environment); err != nil {
			t.Fatalf("runBuild() error: %v", err)
		}
		if te.renderer.timeout != 90*time.Second {
			t.Errorf("timeout = %v, want 90s", te.renderer.timeout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Timeout precedence and validation
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"default", "", 0, htmlindex.DefaultPDFTimeout, false},
		{"env", "", time.Minute, time.Minute, false},
		{"flag wins", "10s", time.Minute, 10 * time.Second, false},
		{"invalid flag", "fast", 0, 0, true},
		{"zero flag", "0s", 0, 0, true},
		{"negative flag", "-1s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, &envConfig{Timeout: tt.env})
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Errorf("error = %v, want ErrUsage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
