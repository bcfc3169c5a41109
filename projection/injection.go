package projection

import graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"

// InjectedOffset maps a source offset into injected coordinates.
//
// Injected text anchored strictly before src is always counted. Injected
// text anchored exactly at src is counted only for right affinities, which
// place the position after it.
func (t *Table) InjectedOffset(src int, aff Affinity) int {
	src = clampInt(src, 0, t.sourceLen)
	out := src
	for i, in := range t.injections {
		if src < in.Offset {
			break
		}
		if src == in.Offset && !aff.rightOfInjected() {
			break
		}
		out += t.lengths[i]
	}
	return out
}

// SourceOffset maps an injected offset back to the source line. Offsets
// inside injected text resolve to its anchor.
func (t *Table) SourceOffset(off int) int {
	src := clampInt(off, 0, t.InjectedLength())
	for i, in := range t.injections {
		if src <= in.Offset {
			break
		}
		if src < in.Offset+t.lengths[i] {
			src = in.Offset
			continue
		}
		src -= t.lengths[i]
	}
	return src
}

// InjectionSpan is the extent of one injected text in injected coordinates.
type InjectionSpan struct {
	Index int
	Start int
	End   int
}

// InjectionSpans lists every injected text in layout order.
func (t *Table) InjectionSpans() []InjectionSpan {
	if len(t.injections) == 0 {
		return nil
	}
	out := make([]InjectionSpan, len(t.injections))
	for i := range t.injections {
		out[i] = InjectionSpan{Index: i, Start: t.starts[i], End: t.starts[i] + t.lengths[i]}
	}
	return out
}

// injectionAt finds the first injected text whose closed span
// [start, end] contains off.
func (t *Table) injectionAt(off int) (InjectionSpan, bool) {
	for i := range t.injections {
		start := t.starts[i]
		if start > off {
			break
		}
		end := start + t.lengths[i]
		if off <= end {
			return InjectionSpan{Index: i, Start: start, End: end}, true
		}
	}
	return InjectionSpan{}, false
}

// snapAroundInjections moves an injected offset that touches injected text
// to a legal cursor stop.
func (t *Table) snapAroundInjections(off int, aff Affinity) int {
	span, ok := t.injectionAt(off)
	if !ok {
		return off
	}

	switch aff {
	case AffinityRight, AffinityRightOfInjectedText:
		res := span.End
		for i := span.Index; i+1 < len(t.injections) && t.injections[i+1].Offset == t.injections[i].Offset; i++ {
			res += t.lengths[i+1]
		}
		return res
	case AffinityLeft, AffinityLeftOfInjectedText:
		res := span.Start
		for i := span.Index; i-1 >= 0 && t.injections[i-1].Offset == t.injections[i].Offset; i-- {
			res -= t.lengths[i-1]
		}
		return res
	}

	stops := t.injections[span.Index].CursorStops
	if off == span.End && stops.hasRight() {
		return span.End
	}
	res := span.Start
	if stops.hasLeft() {
		return res
	}
	anchor := t.injections[span.Index].Offset
	for i := span.Index - 1; i >= 0 && t.injections[i].Offset == anchor; i-- {
		if t.injections[i].CursorStops.hasRight() {
			break
		}
		res -= t.lengths[i]
		if t.injections[i].CursorStops.hasLeft() {
			break
		}
	}
	return res
}

func splitInjected(content string) []string {
	return graphemeutil.Split(content)
}
