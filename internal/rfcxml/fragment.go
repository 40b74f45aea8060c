package rfcxml

import "strings"

// FragmentKind identifies the kind of markup a Fragment renders to.
type FragmentKind int

const (
	SectionOpen FragmentKind = iota
	SectionClose
	Paragraph
	FigureOpen
	FigureLine
	FigureClose
)

func (k FragmentKind) String() string {
	switch k {
	case SectionOpen:
		return "section-open"
	case SectionClose:
		return "section-close"
	case Paragraph:
		return "paragraph"
	case FigureOpen:
		return "figure-open"
	case FigureLine:
		return "figure-line"
	case FigureClose:
		return "figure-close"
	}
	return "unknown"
}

// Fragment is one unit of emitted markup. Text is already escaped.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Markup renders the fragment without a trailing newline.
func (f Fragment) Markup() string {
	switch f.Kind {
	case SectionOpen:
		return `<section title="` + f.Text + `">`
	case SectionClose:
		return "</section>"
	case Paragraph:
		return "<t>" + f.Text + "</t>"
	case FigureOpen:
		return "<figure>\n<artwork>"
	case FigureClose:
		return "</artwork>\n</figure>"
	default:
		return f.Text
	}
}

// Render concatenates fragments, one per line.
func Render(frags []Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Markup())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func open(title string) Fragment { return Fragment{Kind: SectionOpen, Text: Escape(title)} }

func closes(n int) []Fragment {
	out := make([]Fragment, n)
	for i := range out {
		out[i] = Fragment{Kind: SectionClose}
	}
	return out
}
