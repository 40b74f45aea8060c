package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}

	want := []string{
		"#1 Title",
		"Intro text.",
		"#2 Section A",
		"Section A content.",
		"#3 Subsection A1",
		"Subsection A1 content.",
		"#2 Section B",
		"Section B content.",
	}
	if diff := cmp.Diff(tree.Lines(), want); diff != "" {
		t.Error("-got +want:\n", diff)
	}
}

func TestMarkdownParser_SkippedLevelIsRepaired(t *testing.T) {
	input := "# Top\n\n### Jumped\n\ntext\n"
	lines, err := ReadLines(strings.NewReader(input), "skip.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"#1 Top", "#2 Jumped", "text"}
	if diff := cmp.Diff(lines, want); diff != "" {
		t.Error("-got +want:\n", diff)
	}
}

func TestMarkdownParser_CodeBlocksBecomeFigures(t *testing.T) {
	input := "# API\n\nList of endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text\nafter code.\n"

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"#1 API",
		"List of endpoints:",
		"%",
		"GET /api/users",
		"POST /api/users",
		"%",
		"More text after code.",
	}
	if diff := cmp.Diff(tree.Lines(), want); diff != "" {
		t.Error("-got +want:\n", diff)
	}
}

func TestMarkdownParser_ListsAndQuotes(t *testing.T) {
	input := "- first item\n- second item\n\n> quoted\n"
	lines, err := ReadLines(strings.NewReader(input), "list.md", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first item", "second item", "quoted"}
	if diff := cmp.Diff(lines, want); diff != "" {
		t.Error("-got +want:\n", diff)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 || len(tree.Blocks) != 0 {
		t.Errorf("expected empty tree, got %+v", tree)
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
