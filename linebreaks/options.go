// Package linebreaks computes the break table of a single line: where the
// line, with injected text spliced in, wraps and how far continuation lines
// are indented.
package linebreaks

import "fmt"

// WrapMode controls how long lines are split.
//
// WrapNone keeps one output line per source line. WrapWord and WrapGrapheme
// use soft wrapping.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGrapheme
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapWord:
		return "word"
	case WrapGrapheme:
		return "grapheme"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(m))
	}
}

// ParseWrapMode accepts the names produced by WrapMode.String.
func ParseWrapMode(s string) (WrapMode, error) {
	for m := WrapNone; m <= WrapGrapheme; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return WrapNone, fmt.Errorf("unknown wrap mode %q", s)
}

// WrapIndent controls the indent of continuation lines.
type WrapIndent int

const (
	IndentNone       WrapIndent = iota
	IndentSame                  // same as the line's leading whitespace
	IndentIndent                // one tab stop deeper
	IndentDeepIndent            // two tab stops deeper
)

func (w WrapIndent) String() string {
	switch w {
	case IndentNone:
		return "none"
	case IndentSame:
		return "same"
	case IndentIndent:
		return "indent"
	case IndentDeepIndent:
		return "deepIndent"
	default:
		return fmt.Sprintf("WrapIndent(%d)", int(w))
	}
}

// ParseWrapIndent accepts the names produced by WrapIndent.String.
func ParseWrapIndent(s string) (WrapIndent, error) {
	for w := IndentNone; w <= IndentDeepIndent; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return IndentNone, fmt.Errorf("unknown wrap indent %q", s)
}

// Default break characters for WrapWord.
const (
	DefaultBreakBefore = "([{"
	DefaultBreakAfter  = ")]}?|/&.,;"
)

// Options configures break computation.
type Options struct {
	Mode WrapMode

	// Column is the number of cells per output line, indent included.
	// Values <= 0 disable wrapping.
	Column int

	// TabSize defaults to 4.
	TabSize int

	Indent WrapIndent

	// BreakBefore and BreakAfter list clusters a word-wrapped line may break
	// before or after, in addition to whitespace.
	BreakBefore string
	BreakAfter  string
}

// DefaultOptions wraps words at 80 cells with the same indent.
func DefaultOptions() Options {
	return Options{
		Mode:        WrapWord,
		Column:      80,
		TabSize:     4,
		Indent:      IndentSame,
		BreakBefore: DefaultBreakBefore,
		BreakAfter:  DefaultBreakAfter,
	}
}

// Enabled reports whether opts produce soft wraps.
func (o Options) Enabled() bool {
	return o.Mode != WrapNone && o.Column > 0
}
