package projection

// TranslateToOutputPosition projects a source offset onto the wrapped
// output.
func (t *Table) TranslateToOutputPosition(src int, aff Affinity) OutputPosition {
	return t.Locate(t.InjectedOffset(src, aff), aff)
}

// TranslateToInputOffset maps an output position back to a source offset.
func (t *Table) TranslateToInputOffset(line, col int) int {
	return t.SourceOffset(t.InjectedOffsetAt(line, col))
}

// NormalizeOutputPosition moves a position off injected text onto a legal
// cursor stop, then resolves the wrap boundary ambiguity: with AffinityLeft
// the start of a continuation line becomes the end of the previous line,
// with AffinityRight the end of a line becomes the start of the next one.
func (t *Table) NormalizeOutputPosition(line, col int, aff Affinity) OutputPosition {
	line = t.clampLine(line)
	col = clampInt(col, t.MinOutputColumn(line), t.MaxOutputColumn(line))

	if len(t.injections) > 0 {
		off := t.InjectedOffsetAt(line, col)
		if snapped := t.snapAroundInjections(off, aff); snapped != off {
			return t.Locate(snapped, aff)
		}
	}

	switch aff {
	case AffinityLeft:
		if line > 0 && col == t.MinOutputColumn(line) {
			return OutputPosition{Line: line - 1, Column: t.MaxOutputColumn(line - 1)}
		}
	case AffinityRight:
		if line < len(t.breaks)-1 && col == t.MaxOutputColumn(line) {
			return OutputPosition{Line: line + 1, Column: t.MinOutputColumn(line + 1)}
		}
	}
	return OutputPosition{Line: line, Column: col}
}

// InjectedTextAt returns the injected text touching the output position,
// edges included.
func (t *Table) InjectedTextAt(line, col int) (InjectedText, bool) {
	if len(t.injections) == 0 {
		return InjectedText{}, false
	}
	span, ok := t.injectionAt(t.InjectedOffsetAt(line, col))
	if !ok {
		return InjectedText{}, false
	}
	return t.injections[span.Index], true
}

// Compose splices the injected text into the source graphemes and returns
// the graphemes of the line in injected coordinates. Source graphemes past
// SourceLength are dropped; missing ones are left as empty strings.
func (t *Table) Compose(source []string) []string {
	out := make([]string, 0, t.InjectedLength())
	next := 0
	for i, in := range t.injections {
		for ; next < in.Offset; next++ {
			out = append(out, graphemeAt(source, next))
		}
		out = append(out, splitInjected(t.injections[i].Content)...)
	}
	for ; next < t.sourceLen; next++ {
		out = append(out, graphemeAt(source, next))
	}
	return out
}

func graphemeAt(source []string, i int) string {
	if i < len(source) {
		return source[i]
	}
	return ""
}
