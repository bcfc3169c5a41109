package projection

import "sort"

// Locate maps an injected offset to an output position.
//
// An offset exactly at a break belongs to the end of the earlier line with
// AffinityLeft and to the start of the next line otherwise. Offsets outside
// the line are clamped.
func (t *Table) Locate(off int, aff Affinity) OutputPosition {
	off = clampInt(off, 0, t.InjectedLength())

	var line int
	if aff == AffinityLeft {
		line = sort.Search(len(t.breaks), func(i int) bool { return t.breaks[i] >= off })
	} else {
		line = sort.Search(len(t.breaks), func(i int) bool { return t.breaks[i] > off })
	}
	line = t.clampLine(line)

	col := off - t.LineStart(line)
	if line > 0 {
		col += t.wrappedIndent
	}
	return OutputPosition{Line: line, Column: col}
}

// InjectedOffsetAt maps an output position to injected coordinates. Columns
// inside the wrapped indent resolve to the first grapheme of the line and
// columns past the end clamp to the line end.
func (t *Table) InjectedOffsetAt(line, col int) int {
	line = t.clampLine(line)
	if line > 0 {
		col -= t.wrappedIndent
	}
	start := t.LineStart(line)
	return start + clampInt(col, 0, t.breaks[line]-start)
}
