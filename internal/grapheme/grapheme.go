// Package grapheme wraps uniseg segmentation and terminal cell widths so
// every package counts columns the same way.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabSize is used whenever a caller passes a non-positive tab size.
const DefaultTabSize = 4

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	return sb.String()
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	return strings.Join(clusters, "")
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

// TabAdvance returns the number of cells a tab occupies when it starts at
// visualCol.
func TabAdvance(visualCol, tabSize int) int {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	if visualCol < 0 {
		visualCol = 0
	}
	return tabSize - visualCol%tabSize
}

// Width returns the terminal cell width of cluster when it starts at
// visualCol. Tabs expand to the next tab stop; every other cluster is at
// least one cell wide.
func Width(cluster string, visualCol, tabSize int) int {
	if cluster == "\t" {
		return TabAdvance(visualCol, tabSize)
	}

	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 1 {
		w = 1
	}
	return w
}
