package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	htmlindex "github.com/alnah/go-htmlindex"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and environment
// ---------------------------------------------------------------------------

// fakeRenderer records what it was asked to print.
type fakeRenderer struct {
	mu      sync.Mutex
	timeout time.Duration
	doc     string
	opts    *htmlindex.PDFOptions
	err     error
	closed  bool
}

func (f *fakeRenderer) ToPDF(_ context.Context, document string, opts *htmlindex.PDFOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = document
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	renderer *fakeRenderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		renderer: &fakeRenderer{},
	}
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewRenderer: func(timeout time.Duration) pdfRenderer {
			te.renderer.timeout = timeout
			return te.renderer
		},
	}
	return te
}

// writeFile writes content under dir and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Expected fixed head prefix for lang en-US.
const headPrefix = `<!DOCTYPE html><html lang="en-US"><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1.0">`
