// Package rfcxml converts the plain line markup into xml2rfc v2 documents.
//
// The markup has three constructs: "#N title" headings, "%" delimited
// verbatim figures and one-line paragraphs. Blank lines separate and are
// never emitted.
package rfcxml

import "strings"

// Boilerplate supplies the fixed text around the converted body.
type Boilerplate interface {
	Header() string
	Footer() string
}

// Body converts a line sequence into body fragments. Any error aborts the
// whole conversion and no fragments are returned.
func Body(lines []string) ([]Fragment, error) {
	var (
		frags   []Fragment
		tracker Tracker
	)
	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case line == "":
			i++
		case IsHeading(line):
			h, err := ParseHeading(line)
			if err != nil {
				return nil, &LineError{Line: i + 1, Err: err}
			}
			out, err := tracker.Enter(h.Title, h.Level)
			if err != nil {
				return nil, &LineError{Line: i + 1, Err: err}
			}
			frags = append(frags, out...)
			i++
		case IsFigureDelimiter(line):
			next, out, err := ScanFigure(lines, i)
			if err != nil {
				return nil, err
			}
			frags = append(frags, out...)
			i = next
		default:
			frags = append(frags, Fragment{Kind: Paragraph, Text: Escape(line)})
			i++
		}
	}
	return append(frags, tracker.Finish()...), nil
}

// Convert produces the finished document: header, body, footer.
func Convert(lines []string, bp Boilerplate) (string, error) {
	frags, err := Body(lines)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(bp.Header())
	sb.WriteString(Render(frags))
	sb.WriteString(bp.Footer())
	return sb.String(), nil
}
