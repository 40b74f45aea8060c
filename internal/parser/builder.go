package parser

import (
	"strings"

	"github.com/dgallion1/plainrfc/internal/doctree"
)

// treeBuilder nests sections by heading level with a stack. A heading pops
// entries until it finds a shallower parent, so skipped source levels
// collapse into legal nesting.
type treeBuilder struct {
	tree  *doctree.DocTree
	root  *doctree.DocNode
	stack []stackEntry
}

type stackEntry struct {
	node  *doctree.DocNode
	level int
}

func newTreeBuilder(title string) *treeBuilder {
	root := &doctree.DocNode{Title: title}
	return &treeBuilder{
		tree:  &doctree.DocTree{Title: title},
		root:  root,
		stack: []stackEntry{{node: root, level: 0}},
	}
}

func (b *treeBuilder) heading(level int, title string) *doctree.DocNode {
	newNode := &doctree.DocNode{Title: strings.TrimSpace(title)}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, newNode)
	b.stack = append(b.stack, stackEntry{node: newNode, level: level})
	return newNode
}

func (b *treeBuilder) block(blk doctree.Block) {
	top := b.stack[len(b.stack)-1].node
	top.Blocks = append(top.Blocks, blk)
}

func (b *treeBuilder) paragraph(text string) {
	if t := strings.TrimSpace(text); t != "" {
		b.block(doctree.Paragraph(t))
	}
}

func (b *treeBuilder) figure(text string) {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	b.block(doctree.Figure(strings.Split(text, "\n")))
}

func (b *treeBuilder) done() *doctree.DocTree {
	b.tree.Blocks = b.root.Blocks
	b.tree.Children = b.root.Children
	return b.tree
}
