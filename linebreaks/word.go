package linebreaks

// findWordWrapBreak returns the last break opportunity in (start, overflow].
// A line may end after whitespace or a break-after cluster, or before a
// break-before cluster.
func findWordWrapBreak(units []wrapUnit, start, overflow int) (int, bool) {
	if start < 0 {
		start = 0
	}
	if overflow > len(units) {
		overflow = len(units)
	}
	for p := overflow; p > start; p-- {
		if canBreakAt(units, p) {
			return p, true
		}
	}
	return 0, false
}

func canBreakAt(units []wrapUnit, p int) bool {
	prev := units[p-1]
	if prev.isWhitespace || prev.breakAfter {
		return true
	}
	return p < len(units) && units[p].breakBefore
}

// adjustBreakForLeadingPunctuation pulls a forced break back so the next
// line does not start with punctuation, as long as the current line keeps
// at least one unit.
func adjustBreakForLeadingPunctuation(units []wrapUnit, start, overflow int) int {
	end := overflow
	for end > start+1 && end < len(units) && units[end].isPunct {
		end--
	}
	return end
}
