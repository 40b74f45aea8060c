package rfcxml

import "fmt"

// FigureDelimiter is the line that opens and closes a verbatim figure block.
const FigureDelimiter = "%"

// IsFigureDelimiter reports whether a line opens or closes a figure.
func IsFigureDelimiter(line string) bool {
	return line == FigureDelimiter
}

// ScanFigure emits the figure whose opening delimiter is lines[pos]. It
// returns the index just past the closing delimiter.
func ScanFigure(lines []string, pos int) (int, []Fragment, error) {
	if pos < 0 || pos >= len(lines) || !IsFigureDelimiter(lines[pos]) {
		return pos, nil, fmt.Errorf("no figure delimiter at line %d", pos+1)
	}
	frags := []Fragment{{Kind: FigureOpen}}
	for i := pos + 1; i < len(lines); i++ {
		if IsFigureDelimiter(lines[i]) {
			return i + 1, append(frags, Fragment{Kind: FigureClose}), nil
		}
		frags = append(frags, Fragment{Kind: FigureLine, Text: Escape(lines[i])})
	}
	return len(lines), nil, &LineError{Line: pos + 1, Err: ErrUnterminatedFigure}
}
