package rfcxml

import "fmt"

// HeadingMarker starts a heading line: "#2 Title".
const HeadingMarker = '#'

// titleOffset is the width of the "#N " prefix.
const titleOffset = 3

// Heading is a parsed heading line.
type Heading struct {
	Level int
	Title string
}

// IsHeading reports whether a line is meant as a heading.
func IsHeading(line string) bool {
	return len(line) > 0 && line[0] == HeadingMarker
}

// ParseHeading splits a heading line into its level and title.
func ParseHeading(line string) (Heading, error) {
	if !IsHeading(line) {
		return Heading{}, fmt.Errorf("%w: missing %q marker", ErrMalformedHeading, HeadingMarker)
	}
	if len(line) < 2 || line[1] < '1' || line[1] > '9' {
		return Heading{}, fmt.Errorf("%w: %q has no level digit 1-9", ErrMalformedHeading, line)
	}
	h := Heading{Level: int(line[1] - '0')}
	if len(line) > titleOffset {
		h.Title = line[titleOffset:]
	}
	return h, nil
}

// Transition names how the tracker moves from the current depth to a new heading level.
type Transition int

const (
	// Nest opens a child of the current section.
	Nest Transition = iota
	// Sibling closes the current section and opens one at the same depth.
	Sibling
	// Unwind closes sections up to and including the one at the new level.
	Unwind
)

func (t Transition) String() string {
	switch t {
	case Nest:
		return "nest"
	case Sibling:
		return "sibling"
	case Unwind:
		return "unwind"
	}
	return "unknown"
}

// Plan decides the transition from depth to level and how many sections it closes.
func Plan(depth, level int) (Transition, int, error) {
	switch {
	case level < 1:
		return 0, 0, fmt.Errorf("%w: level %d", ErrMalformedHeading, level)
	case level > depth+1:
		return 0, 0, fmt.Errorf("%w: level %d heading at depth %d", ErrIllegalNesting, level, depth)
	case level == depth+1:
		return Nest, 0, nil
	case level == depth:
		return Sibling, 1, nil
	default:
		return Unwind, depth - level + 1, nil
	}
}

// Tracker turns a flat sequence of heading levels into balanced section fragments.
// The zero value is outside any section.
type Tracker struct {
	depth int
}

// Depth returns the number of currently open sections.
func (t *Tracker) Depth() int {
	return t.depth
}

// Enter closes whatever sections the new heading ends and opens its section.
// On error the depth is left unchanged.
func (t *Tracker) Enter(title string, level int) ([]Fragment, error) {
	_, n, err := Plan(t.depth, level)
	if err != nil {
		return nil, err
	}
	frags := append(closes(n), open(title))
	t.depth = level
	return frags, nil
}

// Finish closes every open section and resets the tracker.
func (t *Tracker) Finish() []Fragment {
	frags := closes(t.depth)
	t.depth = 0
	return frags
}
