package htmlindex

import "errors"

// Sentinel errors for library operations.
var (
	// ErrBuilderFinalized is the panic value (wrapped) raised when a
	// Builder is used after it was consumed.
	ErrBuilderFinalized = errors.New("builder already finalized")

	// Markdown body errors.
	ErrEmptyMarkdown         = errors.New("markdown content cannot be empty")
	ErrMarkdownConversion    = errors.New("markdown conversion failed")
	ErrFrontMatter           = errors.New("invalid front matter")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// PDF snapshot errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)
