package main

import (
	"context"
	"io"
	"os"
	"time"

	htmlindex "github.com/alnah/go-htmlindex"
)

// pdfRenderer prints an assembled document. Satisfied by
// *htmlindex.PDFRenderer and by fakes in tests.
type pdfRenderer interface {
	ToPDF(ctx context.Context, document string, opts *htmlindex.PDFOptions) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ pdfRenderer = (*htmlindex.PDFRenderer)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the PDF renderer factory.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewRenderer func(timeout time.Duration) pdfRenderer

	// Ctx is the parent of every command context. Nil means Background.
	Ctx context.Context
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewRenderer: func(timeout time.Duration) pdfRenderer {
			return htmlindex.NewPDFRenderer(timeout)
		},
	}
}

// Context returns the parent context for commands.
func (e *Environment) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
