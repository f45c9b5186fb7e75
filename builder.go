package htmlindex

import (
	"fmt"
	"strings"
)

// DefaultLang is the language tag applied by New.
const DefaultLang = "en-US"

// Fixed document boilerplate.
const (
	doctype   = "<!DOCTYPE html>"
	charset   = `<meta charset="utf-8">`
	viewport  = `<meta name="viewport" content="width=device-width, initial-scale=1.0">`
	htmlClose = "</html>"
	headOpen  = "<head>"
	headClose = "</head>"
)

// Fragment templates. Values are interpolated verbatim.
const (
	htmlOpenTmpl      = `<html lang="%s">`
	titleTmpl         = `<title>%s</title>`
	descriptionTmpl   = `<meta name="description" content="%s">`
	themeColorTmpl    = `<meta name="theme-color" content="%s">`
	faviconTmpl       = `<link rel="icon" type="image/x-icon" href="%s">`
	manifestTmpl      = `<link rel="manifest" href="%s">`
	deferScriptTmpl   = `<script src="%s" defer></script>`
	blockScriptTmpl   = `<script src="%s"></script>`
	inlineScriptTmpl  = `<script>%s</script>`
	lazyScriptTmpl    = `<link rel="prefetch" href="%s">`
	asyncStyleTmpl    = `<link rel="preload" as="style" href="%s" onload="this.rel='stylesheet'" onerror="this.rel='stylesheet'">`
	inlineStyleTmpl   = `<style>%s</style>`
	blockingStyleTmpl = `<link rel="stylesheet" href="%s">`
	fontTmpl          = `<link rel="preload" as="font" crossorigin href="%s">`
)

// preloadPolyfill is the loadCSS rel=preload polyfill (filamentgroup,
// MIT). Browsers without native preload support get their preloaded
// stylesheets activated by it.
const preloadPolyfill = `!function(t){"use strict";t.loadCSS||(t.loadCSS=function(){});var e=loadCSS.relpreload={};if(e.support=function(){var e;try{e=t.document.createElement("link").relList.supports("preload")}catch(t){e=!1}return function(){return e}}(),e.bindMediaToggle=function(t){var e=t.media||"all";function a(){t.addEventListener?t.removeEventListener("load",a):t.attachEvent&&t.detachEvent("onload",a),t.setAttribute("onload",null),t.media=e}t.addEventListener?t.addEventListener("load",a):t.attachEvent&&t.attachEvent("onload",a),setTimeout(function(){t.rel="stylesheet",t.media="only x"}),setTimeout(a,3e3)},e.poly=function(){if(!e.support())for(var a=t.document.getElementsByTagName("link"),n=0;n<a.length;n++){var o=a[n];"preload"!==o.rel||"style"!==o.getAttribute("as")||o.getAttribute("data-loadcss")||(o.setAttribute("data-loadcss",!0),e.bindMediaToggle(o))}},!e.support()){e.poly();var a=t.setInterval(e.poly,500);t.addEventListener?t.addEventListener("load",function(){e.poly(),t.clearInterval(a)}):t.attachEvent&&t.attachEvent("onload",function(){e.poly(),t.clearInterval(a)})}"undefined"!=typeof exports?exports.loadCSS=loadCSS:t.loadCSS=loadCSS}("undefined"!=typeof global?global:this);`

// Builder accumulates the parts of an HTML document and assembles them
// with Build.
//
// Every value passed to a Builder is written into the document as is.
// Nothing is escaped: callers must escape untrusted input themselves
// (html.EscapeString for text and attribute values) before handing it
// over, otherwise the output may contain injected markup.
//
// A Builder is not safe for concurrent use. It is consumed by Build,
// Response or WriteResponse; calling any method afterwards panics with
// an error wrapping ErrBuilderFinalized.
type Builder struct {
	lang string

	title       string
	description string
	themeColor  string
	favicon     string
	manifest    string
	body        string
	hasBody     bool

	scripts []string
	styles  []string
	fonts   []string

	preloadPolyfill bool
	built           bool
}

// New returns an empty Builder with DefaultLang applied.
func New() *Builder {
	return &Builder{lang: DefaultLang}
}

// Lang sets the lang attribute of the root element.
func (b *Builder) Lang(tag string) *Builder {
	b.mustBeOpen("Lang")
	b.lang = tag
	return b
}

// Title sets the document title.
func (b *Builder) Title(title string) *Builder {
	b.mustBeOpen("Title")
	b.title = fmt.Sprintf(titleTmpl, title)
	return b
}

// Description sets the description meta tag.
func (b *Builder) Description(desc string) *Builder {
	b.mustBeOpen("Description")
	b.description = fmt.Sprintf(descriptionTmpl, desc)
	return b
}

// ThemeColor sets the theme-color meta tag.
func (b *Builder) ThemeColor(color string) *Builder {
	b.mustBeOpen("ThemeColor")
	b.themeColor = fmt.Sprintf(themeColorTmpl, color)
	return b
}

// Favicon links an icon.
func (b *Builder) Favicon(path string) *Builder {
	b.mustBeOpen("Favicon")
	b.favicon = fmt.Sprintf(faviconTmpl, path)
	return b
}

// Manifest links a web app manifest.
func (b *Builder) Manifest(path string) *Builder {
	b.mustBeOpen("Manifest")
	b.manifest = fmt.Sprintf(manifestTmpl, path)
	return b
}

// RawBody sets the body fragment. It must include its own <body></body>
// tags; nothing is synthesized when no body is set.
func (b *Builder) RawBody(body string) *Builder {
	b.mustBeOpen("RawBody")
	b.body = body
	b.hasBody = true
	return b
}

// Script adds a deferred script.
func (b *Builder) Script(src string) *Builder {
	b.mustBeOpen("Script")
	b.scripts = append(b.scripts, fmt.Sprintf(deferScriptTmpl, src))
	return b
}

// BlockingScript adds a script that blocks rendering until it is loaded
// and executed.
func (b *Builder) BlockingScript(src string) *Builder {
	b.mustBeOpen("BlockingScript")
	b.scripts = append(b.scripts, fmt.Sprintf(blockScriptTmpl, src))
	return b
}

// InlineScript adds a script whose source is embedded in the document.
func (b *Builder) InlineScript(src string) *Builder {
	b.mustBeOpen("InlineScript")
	b.scripts = append(b.scripts, fmt.Sprintf(inlineScriptTmpl, src))
	return b
}

// LazyScript adds a prefetch hint for a script. The browser fetches it in
// the background but does not execute it.
func (b *Builder) LazyScript(src string) *Builder {
	b.mustBeOpen("LazyScript")
	b.scripts = append(b.scripts, fmt.Sprintf(lazyScriptTmpl, src))
	return b
}

// Style adds a stylesheet that is preloaded without blocking rendering and
// activated once fetched. The first call also appends the preload
// polyfill to the scripts.
func (b *Builder) Style(href string) *Builder {
	b.mustBeOpen("Style")
	if !b.preloadPolyfill {
		b.scripts = append(b.scripts, fmt.Sprintf(inlineScriptTmpl, preloadPolyfill))
		b.preloadPolyfill = true
	}
	b.styles = append(b.styles, fmt.Sprintf(asyncStyleTmpl, href))
	return b
}

// InlineStyle adds a <style> block.
func (b *Builder) InlineStyle(css string) *Builder {
	b.mustBeOpen("InlineStyle")
	b.styles = append(b.styles, fmt.Sprintf(inlineStyleTmpl, css))
	return b
}

// BlockingStyle adds a regular, render-blocking stylesheet link.
func (b *Builder) BlockingStyle(href string) *Builder {
	b.mustBeOpen("BlockingStyle")
	b.styles = append(b.styles, fmt.Sprintf(blockingStyleTmpl, href))
	return b
}

// Font adds a preload hint for a font file.
func (b *Builder) Font(href string) *Builder {
	b.mustBeOpen("Font")
	b.fonts = append(b.fonts, fmt.Sprintf(fontTmpl, href))
	return b
}

// Build assembles the document and consumes the Builder.
//
// The head is written in a fixed order: charset, viewport, title,
// description, scripts, styles, fonts, manifest, theme color, favicon.
// Fragments are concatenated without separators.
func (b *Builder) Build() string {
	b.mustBeOpen("Build")
	b.built = true

	var buf strings.Builder
	buf.Grow(b.size())

	buf.WriteString(doctype)
	buf.WriteString(fmt.Sprintf(htmlOpenTmpl, b.lang))
	buf.WriteString(headOpen)
	buf.WriteString(charset)
	buf.WriteString(viewport)
	buf.WriteString(b.title)
	buf.WriteString(b.description)
	for _, s := range b.scripts {
		buf.WriteString(s)
	}
	for _, s := range b.styles {
		buf.WriteString(s)
	}
	for _, f := range b.fonts {
		buf.WriteString(f)
	}
	buf.WriteString(b.manifest)
	buf.WriteString(b.themeColor)
	buf.WriteString(b.favicon)
	buf.WriteString(headClose)
	if b.hasBody {
		buf.WriteString(b.body)
	}
	buf.WriteString(htmlClose)

	return buf.String()
}

// size estimates the length of the assembled document.
func (b *Builder) size() int {
	n := len(doctype) + len(htmlOpenTmpl) + len(b.lang) + len(headOpen) +
		len(charset) + len(viewport) + len(headClose) + len(htmlClose)
	n += len(b.title) + len(b.description) + len(b.manifest) +
		len(b.themeColor) + len(b.favicon) + len(b.body)
	for _, group := range [][]string{b.scripts, b.styles, b.fonts} {
		for _, s := range group {
			n += len(s)
		}
	}
	return n
}

// mustBeOpen panics if the Builder was already consumed.
func (b *Builder) mustBeOpen(op string) {
	if b.built {
		panic(fmt.Errorf("%w: %s called after Build", ErrBuilderFinalized, op))
	}
}
