// Package doctree is the intermediate tree used to bring structured input
// formats into the plain line markup.
package doctree

import (
	"strconv"
	"strings"

	"github.com/dgallion1/plainrfc/internal/rfcxml"
)

// MaxLevel is the deepest heading level the line markup can express.
const MaxLevel = 9

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Blocks   []Block    // Content before the first heading
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string
	Blocks   []Block
	Page     int // Source page (0 if N/A)
	Children []*DocNode
}

// BlockKind distinguishes paragraphs from verbatim figures.
type BlockKind int

const (
	ParagraphBlock BlockKind = iota
	FigureBlock
)

// Block is a run of content inside a section.
type Block struct {
	Kind  BlockKind
	Lines []string
}

// Paragraph builds a paragraph block from free text.
func Paragraph(text string) Block {
	return Block{Kind: ParagraphBlock, Lines: []string{text}}
}

// Figure builds a verbatim block, one entry per line.
func Figure(lines []string) Block {
	return Block{Kind: FigureBlock, Lines: lines}
}

// Lines flattens the tree into the plain line markup. Heading levels follow
// tree depth, so the result never skips a level.
func (t *DocTree) Lines() []string {
	var out []string
	out = appendBlocks(out, t.Blocks)
	for _, c := range t.Children {
		out = appendNode(out, c, 1)
	}
	return out
}

func appendNode(out []string, n *DocNode, depth int) []string {
	level := depth
	if level > MaxLevel {
		level = MaxLevel
	}
	title := strings.Join(strings.Fields(n.Title), " ")
	out = append(out, "#"+strconv.Itoa(level)+" "+title)
	out = appendBlocks(out, n.Blocks)
	for _, c := range n.Children {
		out = appendNode(out, c, depth+1)
	}
	return out
}

func appendBlocks(out []string, blocks []Block) []string {
	for _, b := range blocks {
		switch b.Kind {
		case FigureBlock:
			out = append(out, rfcxml.FigureDelimiter)
			for _, l := range b.Lines {
				if rfcxml.IsFigureDelimiter(l) {
					l = " " + l
				}
				out = append(out, l)
			}
			out = append(out, rfcxml.FigureDelimiter)
		default:
			p := strings.Join(strings.Fields(strings.Join(b.Lines, " ")), " ")
			if p == "" {
				continue
			}
			if rfcxml.IsHeading(p) || rfcxml.IsFigureDelimiter(p) {
				p = " " + p
			}
			out = append(out, p)
		}
	}
	return out
}
