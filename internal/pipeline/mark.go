package pipeline

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMark is the node kind of ==highlighted== text.
var KindMark = gast.NewNodeKind("Mark")

// Mark is an inline node rendered as <mark>.
type Mark struct {
	gast.BaseInline
}

// Kind implements ast.Node.
func (n *Mark) Kind() gast.NodeKind { return KindMark }

// Dump implements ast.Node.
func (n *Mark) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (p *markDelimiterProcessor) IsDelimiter(b byte) bool { return b == '=' }

func (p *markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *markDelimiterProcessor) OnMatch(consumes int) gast.Node { return &Mark{} }

var defaultMarkDelimiterProcessor = &markDelimiterProcessor{}

// markParser recognizes exactly two '=' as a mark delimiter. Code spans
// and code blocks never reach inline parsers, so comparisons in code stay
// as written.
type markParser struct{}

func (s *markParser) Trigger() []byte { return []byte{'='} }

func (s *markParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultMarkDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '=' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *markParser) CloseBlock(parent gast.Node, pc parser.Context) {}

type markRenderer struct{}

func (r *markRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMark, r.renderMark)
}

func (r *markRenderer) renderMark(w util.BufWriter, _ []byte, _ gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString("</mark>")
	}
	return gast.WalkContinue, nil
}

type markExtension struct{}

// MarkExtension adds ==text== highlighting to goldmark.
var MarkExtension goldmark.Extender = &markExtension{}

func (e *markExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&markParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&markRenderer{}, 500),
	))
}
