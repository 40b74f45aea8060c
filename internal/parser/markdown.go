package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/plainrfc/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := newTreeBuilder(baseTitle(filename, ".md", ".markdown"))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		walkMarkdownBlock(b, n, src)
	}
	return b.done(), nil
}

func walkMarkdownBlock(b *treeBuilder, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		b.heading(node.Level, string(node.Text(src)))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		b.figure(rawLines(n, src))
	case *ast.List, *ast.ListItem, *ast.Blockquote:
		// Containers: each child block becomes its own paragraph or figure.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walkMarkdownBlock(b, c, src)
		}
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		b.paragraph(extractText(n, src))
	}
}

// rawLines returns the verbatim source lines of a block.
func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		buf.WriteString(rawLines(n, src))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
