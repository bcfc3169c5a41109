package projection

import (
	"errors"
	"fmt"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
)

// ErrInvalidTable is wrapped by every construction error.
var ErrInvalidTable = errors.New("projection: invalid table")

// Options describes a table. Breaks are offsets in injected coordinates
// where each output line ends; the last break is the length of the line
// with injected text, so len(Breaks) is the output line count.
type Options struct {
	Injections []InjectedText
	Breaks     []int

	// BreakVisibleColumns holds the visible cell column at each break. When
	// nil, the break offsets themselves are used.
	BreakVisibleColumns []int

	// WrappedIndent is prepended to every continuation line.
	WrappedIndent int
}

// Table is the immutable projection of one source line.
type Table struct {
	injections []InjectedText
	lengths    []int // grapheme length of each injection
	starts     []int // injection start in injected coordinates

	totalInjected int
	sourceLen     int

	breaks        []int
	breakVisible  []int
	wrappedIndent int
}

// New validates opts and builds a Table. The slices are copied.
func New(opts Options) (*Table, error) {
	if opts.WrappedIndent < 0 {
		return nil, invalidf("negative wrapped indent %d", opts.WrappedIndent)
	}
	if len(opts.Breaks) == 0 {
		return nil, invalidf("empty break table")
	}
	if opts.BreakVisibleColumns != nil && len(opts.BreakVisibleColumns) != len(opts.Breaks) {
		return nil, invalidf("break visible columns: got %d entries, want %d", len(opts.BreakVisibleColumns), len(opts.Breaks))
	}

	prev := -1
	for i, b := range opts.Breaks {
		if b < 0 {
			return nil, invalidf("break %d is negative (%d)", i, b)
		}
		if b <= prev {
			return nil, invalidf("breaks not strictly increasing at %d (%d after %d)", i, b, prev)
		}
		prev = b
	}

	t := &Table{
		breaks:        append([]int(nil), opts.Breaks...),
		wrappedIndent: opts.WrappedIndent,
	}
	if opts.BreakVisibleColumns != nil {
		t.breakVisible = append([]int(nil), opts.BreakVisibleColumns...)
	} else {
		t.breakVisible = append([]int(nil), opts.Breaks...)
	}

	if len(opts.Injections) > 0 {
		t.injections = append([]InjectedText(nil), opts.Injections...)
		t.lengths = make([]int, len(t.injections))
		t.starts = make([]int, len(t.injections))
		prevOffset := 0
		for i, in := range t.injections {
			if in.Offset < 0 {
				return nil, invalidf("injection %d has negative offset %d", i, in.Offset)
			}
			if in.Offset < prevOffset {
				return nil, invalidf("injections not sorted at %d (%d after %d)", i, in.Offset, prevOffset)
			}
			prevOffset = in.Offset
			t.lengths[i] = graphemeutil.Count(in.Content)
			t.starts[i] = in.Offset + t.totalInjected
			t.totalInjected += t.lengths[i]
		}
	}

	t.sourceLen = t.breaks[len(t.breaks)-1] - t.totalInjected
	if t.sourceLen < 0 {
		return nil, invalidf("injected text (%d) longer than the line (%d)", t.totalInjected, t.breaks[len(t.breaks)-1])
	}
	if n := len(t.injections); n > 0 && t.injections[n-1].Offset > t.sourceLen {
		return nil, invalidf("injection anchored at %d past line end %d", t.injections[n-1].Offset, t.sourceLen)
	}

	return t, nil
}

// MustNew is New for tables built from trusted, precomputed input. It panics
// on invalid options.
func MustNew(opts Options) *Table {
	t, err := New(opts)
	if err != nil {
		panic(err)
	}
	return t
}

// Identity returns the single-line table of an unwrapped line without
// injected text.
func Identity(length int) *Table {
	if length < 0 {
		length = 0
	}
	return &Table{
		breaks:       []int{length},
		breakVisible: []int{length},
		sourceLen:    length,
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...))
}

// OutputLineCount returns the number of wrapped output lines.
func (t *Table) OutputLineCount() int { return len(t.breaks) }

// WrappedIndent returns the indent width of continuation lines.
func (t *Table) WrappedIndent() int { return t.wrappedIndent }

// SourceLength returns the grapheme length of the source line.
func (t *Table) SourceLength() int { return t.sourceLen }

// InjectedLength returns the length of the line with injected text.
func (t *Table) InjectedLength() int { return t.breaks[len(t.breaks)-1] }

// HasInjections reports whether any injected text is present.
func (t *Table) HasInjections() bool { return len(t.injections) > 0 }

// Injections returns a copy of the injected text entries.
func (t *Table) Injections() []InjectedText {
	return append([]InjectedText(nil), t.injections...)
}

// BreakOffsets returns a copy of the break table.
func (t *Table) BreakOffsets() []int {
	return append([]int(nil), t.breaks...)
}

// BreakVisibleColumn returns the visible cell column of break i.
func (t *Table) BreakVisibleColumn(i int) int {
	return t.breakVisible[t.clampLine(i)]
}

// LineStart returns the injected offset at which output line i begins.
func (t *Table) LineStart(i int) int {
	i = t.clampLine(i)
	if i == 0 {
		return 0
	}
	return t.breaks[i-1]
}

// LineLength returns the column count of output line i, indent included.
func (t *Table) LineLength(i int) int {
	i = t.clampLine(i)
	n := t.breaks[i] - t.LineStart(i)
	if i > 0 {
		n += t.wrappedIndent
	}
	return n
}

// MinOutputColumn is 0 on the first line and the wrapped indent afterwards.
func (t *Table) MinOutputColumn(i int) int {
	if t.clampLine(i) > 0 {
		return t.wrappedIndent
	}
	return 0
}

// MaxOutputColumn is the column after the last grapheme of output line i.
func (t *Table) MaxOutputColumn(i int) int {
	return t.LineLength(i)
}

func (t *Table) clampLine(i int) int {
	return clampInt(i, 0, len(t.breaks)-1)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
