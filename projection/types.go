package projection

import "fmt"

// Affinity breaks ties when a position is ambiguous between two adjacent
// visual slots: the end of a wrapped line vs the start of the next one, or
// the left vs right edge of injected text.
type Affinity int

const (
	AffinityNone Affinity = iota
	AffinityLeft
	AffinityRight
	AffinityLeftOfInjectedText
	AffinityRightOfInjectedText
)

func (a Affinity) String() string {
	switch a {
	case AffinityNone:
		return "none"
	case AffinityLeft:
		return "left"
	case AffinityRight:
		return "right"
	case AffinityLeftOfInjectedText:
		return "left-of-injected"
	case AffinityRightOfInjectedText:
		return "right-of-injected"
	default:
		return fmt.Sprintf("Affinity(%d)", int(a))
	}
}

// ParseAffinity accepts the names produced by Affinity.String.
func ParseAffinity(s string) (Affinity, error) {
	for a := AffinityNone; a <= AffinityRightOfInjectedText; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return AffinityNone, fmt.Errorf("unknown affinity %q", s)
}

func (a Affinity) rightOfInjected() bool {
	return a == AffinityRight || a == AffinityRightOfInjectedText
}

// CursorStops tells on which edges of an injected text a cursor may rest.
// The zero value places no restriction and behaves like CursorStopsBoth.
type CursorStops int

const (
	CursorStopsNone CursorStops = iota
	CursorStopsLeft
	CursorStopsRight
	CursorStopsBoth
)

func (c CursorStops) String() string {
	switch c {
	case CursorStopsNone:
		return "none"
	case CursorStopsLeft:
		return "left"
	case CursorStopsRight:
		return "right"
	case CursorStopsBoth:
		return "both"
	default:
		return fmt.Sprintf("CursorStops(%d)", int(c))
	}
}

func (c CursorStops) hasLeft() bool  { return c != CursorStopsRight }
func (c CursorStops) hasRight() bool { return c != CursorStopsLeft }

// InjectedText is view-only text spliced into a line before the source
// grapheme at Offset. Several entries may share an Offset; they are laid out
// in slice order.
type InjectedText struct {
	Offset      int
	Content     string
	CursorStops CursorStops

	// StyleKey is passed through to renderers.
	StyleKey string
}

// OutputPosition is a (wrapped line, column) pair. Columns on continuation
// lines include the wrapped indent.
type OutputPosition struct {
	Line   int
	Column int
}

func (p OutputPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Compare orders positions line first: -1, 0 or 1.
func (p OutputPosition) Compare(o OutputPosition) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	}
	return 0
}
