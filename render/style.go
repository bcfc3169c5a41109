package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style controls how parts are drawn.
type Style struct {
	Text       lipgloss.Style
	Injected   lipgloss.Style
	Indent     lipgloss.Style
	Whitespace lipgloss.Style
	Cursor     lipgloss.Style

	// InjectedStyleForKey overrides Injected for parts with a StyleKey.
	InjectedStyleForKey func(key string) (lipgloss.Style, bool)
}

func DefaultStyle() Style {
	return Style{
		Text:       lipgloss.NewStyle(),
		Injected:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Indent:     lipgloss.NewStyle(),
		Whitespace: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
	}
}

func (st Style) forPart(p Part) lipgloss.Style {
	switch p.Kind {
	case PartIndent:
		return st.Indent.Inherit(st.Text)
	case PartInjected:
		if st.InjectedStyleForKey != nil && p.StyleKey != "" {
			if keyed, ok := st.InjectedStyleForKey(p.StyleKey); ok {
				return keyed.Inherit(st.Text)
			}
		}
		return st.Injected.Inherit(st.Text)
	}
	if p.Whitespace {
		return st.Whitespace.Inherit(st.Text)
	}
	return st.Text
}

// Render draws every part with its style.
func (r Result) Render(st Style) string {
	var sb strings.Builder
	for _, p := range r.Parts {
		sb.WriteString(st.forPart(p).Render(p.Text))
	}
	return sb.String()
}

// RenderCursor draws the line with the cluster at output column col in the
// cursor style. A cursor after the last cluster is drawn as one extra
// cell.
func (r Result) RenderCursor(st Style, col int) string {
	col = clampInt(col, 0, len(r.clusters))

	var sb strings.Builder
	for _, p := range r.Parts {
		style := st.forPart(p)
		if col < p.StartColumn || col >= p.EndColumn {
			sb.WriteString(style.Render(p.Text))
			continue
		}
		var before, after strings.Builder
		for c := p.StartColumn; c < col; c++ {
			before.WriteString(r.clusters[c].text)
		}
		for c := col + 1; c < p.EndColumn; c++ {
			after.WriteString(r.clusters[c].text)
		}
		if before.Len() > 0 {
			sb.WriteString(style.Render(before.String()))
		}
		sb.WriteString(st.Cursor.Render(r.clusters[col].text))
		if after.Len() > 0 {
			sb.WriteString(style.Render(after.String()))
		}
	}
	if col == len(r.clusters) {
		sb.WriteString(st.Cursor.Render(" "))
	}
	return sb.String()
}
