// Package pipeline turns Markdown sources into body fragments and prepares
// assembled documents for printing.
//
// It covers the stages around document assembly:
//   - front matter extraction (title, description, lang, theme color)
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//   - the chroma stylesheet matching the emitted highlight classes
//   - relative URL resolution before a document is printed to PDF
//
// Assembly itself lives in the root htmlindex package, which never parses
// or rewrites the fragments it is given.
package pipeline
