// Package render lays out one output line of a projected source line as
// styled parts and keeps the mapping between output columns and terminal
// cells used for cursor placement and hit testing.
package render

import (
	"fmt"
	"strings"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
	"github.com/iw2rmb/lineproj/projection"
)

type PartKind int

const (
	PartText PartKind = iota
	PartInjected
	PartIndent
)

func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartInjected:
		return "injected"
	case PartIndent:
		return "indent"
	default:
		return fmt.Sprintf("PartKind(%d)", int(k))
	}
}

// WhitespaceMode selects which source whitespace is drawn with markers.
type WhitespaceMode int

const (
	WhitespaceNone WhitespaceMode = iota
	WhitespaceAll
	WhitespaceTrailing
)

func (w WhitespaceMode) String() string {
	switch w {
	case WhitespaceNone:
		return "none"
	case WhitespaceAll:
		return "all"
	case WhitespaceTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("WhitespaceMode(%d)", int(w))
	}
}

// ParseWhitespaceMode accepts the names produced by WhitespaceMode.String.
func ParseWhitespaceMode(s string) (WhitespaceMode, error) {
	for w := WhitespaceNone; w <= WhitespaceTrailing; w++ {
		if w.String() == s {
			return w, nil
		}
	}
	return WhitespaceNone, fmt.Errorf("unknown whitespace mode %q", s)
}

// Whitespace markers.
const (
	SpaceMarker = "·"
	TabMarker   = "→"
)

type Options struct {
	TabSize    int
	Whitespace WhitespaceMode
}

// Part is a run of clusters of one kind.
type Part struct {
	Kind PartKind

	// Text is the rendered text: tabs expanded, whitespace markers applied.
	Text string

	StartCell int
	CellWidth int

	// StartColumn/EndColumn is the half-open output column span.
	StartColumn int
	EndColumn   int

	// Whitespace is set for source whitespace drawn with markers.
	Whitespace bool

	// InjectionIndex is the index into Table.Injections for injected parts
	// and -1 otherwise.
	InjectionIndex int
	StyleKey       string
}

type cluster struct {
	text      string
	startCell int
	width     int
	part      int
}

// Result is one rendered output line.
type Result struct {
	Line  int
	Parts []Part

	minColumn int
	clusters  []cluster // indexed by output column
	cellCol   []int     // output column covering each cell
}

type pending struct {
	kind       PartKind
	whitespace bool
	injection  int
	styleKey   string
}

// Line renders output line `line` of tbl, where source is the raw buffer
// line the table was built for.
func Line(tbl *projection.Table, source string, line int, opts Options) Result {
	line = clampInt(line, 0, tbl.OutputLineCount()-1)
	composed := tbl.Compose(graphemeutil.Split(source))
	owner := injectionOwners(tbl, len(composed))
	injections := tbl.Injections()

	trailingFrom := len(composed)
	if opts.Whitespace == WhitespaceTrailing {
		for trailingFrom > 0 && owner[trailingFrom-1] < 0 && graphemeutil.IsSpace(composed[trailingFrom-1]) {
			trailingFrom--
		}
	}

	// Tab stops follow the unwrapped line.
	start := tbl.LineStart(line)
	visual := 0
	for i := 0; i < start && i < len(composed); i++ {
		visual += graphemeutil.Width(composed[i], visual, opts.TabSize)
	}

	res := Result{Line: line, minColumn: tbl.MinOutputColumn(line)}
	var sb strings.Builder
	cur := pending{injection: -1}
	partStart := 0

	flush := func() {
		if len(res.clusters) == partStart {
			return
		}
		first := res.clusters[partStart]
		last := res.clusters[len(res.clusters)-1]
		res.Parts = append(res.Parts, Part{
			Kind:           cur.kind,
			Text:           sb.String(),
			StartCell:      first.startCell,
			CellWidth:      last.startCell + last.width - first.startCell,
			StartColumn:    partStart,
			EndColumn:      len(res.clusters),
			Whitespace:     cur.whitespace,
			InjectionIndex: cur.injection,
			StyleKey:       cur.styleKey,
		})
		sb.Reset()
		partStart = len(res.clusters)
	}

	cell := 0
	emit := func(p pending, text string, width int) {
		if len(res.clusters) > partStart && p != cur {
			flush()
		}
		cur = p
		res.clusters = append(res.clusters, cluster{text: text, startCell: cell, width: width, part: len(res.Parts)})
		for i := 0; i < width; i++ {
			res.cellCol = append(res.cellCol, len(res.clusters)-1)
		}
		sb.WriteString(text)
		cell += width
	}

	for i := 0; i < res.minColumn; i++ {
		emit(pending{kind: PartIndent, injection: -1}, " ", 1)
	}

	end := tbl.BreakOffsets()[line]
	for i := start; i < end && i < len(composed); i++ {
		gr := composed[i]
		w := graphemeutil.Width(gr, visual, opts.TabSize)
		visual += w

		p := pending{kind: PartText, injection: -1}
		if idx := owner[i]; idx >= 0 {
			p = pending{kind: PartInjected, injection: idx, styleKey: injections[idx].StyleKey}
		}
		text := gr
		if p.kind == PartText {
			marked := opts.Whitespace == WhitespaceAll || (opts.Whitespace == WhitespaceTrailing && i >= trailingFrom)
			if marked && (gr == " " || gr == "\t") {
				p.whitespace = true
			}
			text = cellText(gr, w, p.whitespace)
		}
		emit(p, text, w)
	}
	flush()
	return res
}

// injectionOwners maps each injected offset to the index of the injected
// text covering it, or -1 for source graphemes.
func injectionOwners(tbl *projection.Table, n int) []int {
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	for _, span := range tbl.InjectionSpans() {
		for i := span.Start; i < span.End && i < n; i++ {
			owner[i] = span.Index
		}
	}
	return owner
}

func cellText(gr string, width int, marked bool) string {
	switch {
	case gr == "\t" && marked:
		return TabMarker + strings.Repeat(" ", width-1)
	case gr == "\t":
		return strings.Repeat(" ", width)
	case gr == " " && marked:
		return SpaceMarker
	}
	return gr
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
