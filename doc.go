// Package htmlindex assembles complete HTML documents from declarative
// parts.
//
// # Quick Start
//
// Create a Builder, chain the parts you need, and call Build:
//
//	doc := htmlindex.New().
//	    Title("Dashboard").
//	    Description("Team metrics").
//	    Script("/js/app.js").
//	    Style("/css/app.css").
//	    Font("/fonts/inter.woff2").
//	    RawBody("<body><div id=\"root\"></div></body>").
//	    Build()
//
// Build emits one contiguous string with no separators. The head always
// holds the charset and viewport meta tags; everything else appears only
// when set.
//
// # Document Layout
//
// Parts are placed in a fixed order regardless of call order:
//
//  1. Doctype and <html lang>
//  2. charset and viewport meta tags
//  3. Title, then description
//  4. Scripts, styles and fonts, each in insertion order
//  5. Manifest, theme color, favicon
//  6. Body, then </html>
//
// Singleton setters (Title, Description, ThemeColor, Favicon, Manifest,
// RawBody, Lang) keep the last value. Script, style and font lists keep
// every call, duplicates included.
//
// # Loading Strategies
//
// Scripts load deferred (Script), blocking (BlockingScript), inline
// (InlineScript) or as a low-priority prefetch (LazyScript). Styles load
// asynchronously through rel=preload (Style), blocking (BlockingStyle) or
// inline (InlineStyle). The first Style call also adds the loadCSS
// preload polyfill as an inline script.
//
// # Escaping
//
// Values are written verbatim. The package never escapes input, so
// callers must escape anything untrusted before passing it in:
//
//	b.Title(html.EscapeString(userTitle))
//
// # Serving and Printing
//
// Response and WriteResponse deliver the document over HTTP with
// ContentType. MarkdownBody, SplitFrontMatter and HighlightCSS produce
// bodies and stylesheets from Markdown. PDFRenderer prints a finished
// document with headless Chrome.
//
// # Lifecycle
//
// A Builder is consumed by Build, Response or WriteResponse. Any call
// afterwards panics with an error wrapping ErrBuilderFinalized. Builders
// are not safe for concurrent use; create one per document.
package htmlindex
