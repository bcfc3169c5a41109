package linebreaks

import (
	"sort"
	"strings"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
	"github.com/iw2rmb/lineproj/projection"
)

// Compute builds the projection table of line with the given injected
// text. Injected text is sanitized first: anchors are clamped to the line,
// newlines are dropped, empty entries are skipped and entries are stably
// sorted by anchor.
func Compute(line string, injections []projection.InjectedText, opts Options) (*projection.Table, error) {
	source := graphemeutil.Split(line)
	injections = NormalizeInjections(injections, len(source))

	total := len(source)
	for _, in := range injections {
		total += graphemeutil.Count(in.Content)
	}
	flat, err := projection.New(projection.Options{Injections: injections, Breaks: []int{total}})
	if err != nil {
		return nil, err
	}

	units := buildUnits(flat.Compose(source), opts)
	width := 0
	if n := len(units); n > 0 {
		width = units[n-1].endCell
	}
	if !opts.Enabled() || width <= opts.Column {
		return projection.New(projection.Options{
			Injections:          injections,
			Breaks:              []int{total},
			BreakVisibleColumns: []int{width},
		})
	}

	indent := wrappedIndent(units, opts)
	breaks, visible := wrapUnits(units, opts, indent)
	return projection.New(projection.Options{
		Injections:          injections,
		Breaks:              breaks,
		BreakVisibleColumns: visible,
		WrappedIndent:       indent,
	})
}

// NormalizeInjections returns a sanitized copy of injections for a line of
// lineLen graphemes.
func NormalizeInjections(injections []projection.InjectedText, lineLen int) []projection.InjectedText {
	if len(injections) == 0 {
		return nil
	}
	out := make([]projection.InjectedText, 0, len(injections))
	for _, in := range injections {
		in.Content = sanitizeSingleLine(in.Content)
		if in.Content == "" {
			continue
		}
		in.Offset = clampInt(in.Offset, 0, lineLen)
		out = append(out, in)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

func sanitizeSingleLine(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// wrappedIndent derives the continuation indent from the line's leading
// whitespace. It is dropped when it would leave no room for a wide cluster.
func wrappedIndent(units []wrapUnit, opts Options) int {
	if opts.Indent == IndentNone {
		return 0
	}
	lead := 0
	allSpace := true
	for _, u := range units {
		if !u.isWhitespace {
			allSpace = false
			break
		}
		lead = u.endCell
	}
	if allSpace {
		return 0
	}

	tabSize := opts.TabSize
	if tabSize <= 0 {
		tabSize = graphemeutil.DefaultTabSize
	}
	indent := lead
	switch opts.Indent {
	case IndentIndent:
		indent += tabSize
	case IndentDeepIndent:
		indent += 2 * tabSize
	}
	if indent+2 > opts.Column {
		return 0
	}
	return indent
}

// wrapUnits splits units greedily into lines of at most opts.Column cells
// (continuation lines lose indent cells) and returns the break offsets
// with the visible column at each break.
func wrapUnits(units []wrapUnit, opts Options, indent int) (breaks []int, visible []int) {
	for start := 0; start < len(units); {
		capacity := opts.Column
		if start > 0 {
			capacity -= indent
		}

		used := 0
		overflow := start
		for overflow < len(units) {
			w := maxInt(units[overflow].width, 1)
			if used > 0 && used+w > capacity {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if opts.Mode == WrapWord && overflow < len(units) {
			if br, ok := findWordWrapBreak(units, start, overflow); ok {
				end = br
			} else {
				end = adjustBreakForLeadingPunctuation(units, start, overflow)
			}
		}
		if end <= start {
			end = minInt(start+1, len(units))
		}

		breaks = append(breaks, end)
		visible = append(visible, units[end-1].endCell)
		start = end
	}
	return breaks, visible
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
