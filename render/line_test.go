package render

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/lineproj/projection"
)

func wrappedInjectionTable() *projection.Table {
	// "ab" + "INJ" + "cd" wrapped as "abIN" / "  Jcd".
	return projection.MustNew(projection.Options{
		Injections:    []projection.InjectedText{{Offset: 2, Content: "INJ", StyleKey: "hint"}},
		Breaks:        []int{4, 7},
		WrappedIndent: 2,
	})
}

type partShape struct {
	kind        PartKind
	text        string
	startCell   int
	cellWidth   int
	startColumn int
	endColumn   int
}

func assertParts(t *testing.T, got []Part, want []partShape) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("part count: got %d (%+v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.kind || g.Text != w.text || g.StartCell != w.startCell || g.CellWidth != w.cellWidth || g.StartColumn != w.startColumn || g.EndColumn != w.endColumn {
			t.Fatalf("part %d: got %+v, want %+v", i, g, w)
		}
	}
}

func TestLine_InjectedTextAcrossWrap(t *testing.T) {
	tbl := wrappedInjectionTable()

	first := Line(tbl, "abcd", 0, Options{})
	assertParts(t, first.Parts, []partShape{
		{kind: PartText, text: "ab", startCell: 0, cellWidth: 2, startColumn: 0, endColumn: 2},
		{kind: PartInjected, text: "IN", startCell: 2, cellWidth: 2, startColumn: 2, endColumn: 4},
	})
	if got := first.Parts[1].StyleKey; got != "hint" {
		t.Fatalf("style key: got %q, want %q", got, "hint")
	}

	second := Line(tbl, "abcd", 1, Options{})
	assertParts(t, second.Parts, []partShape{
		{kind: PartIndent, text: "  ", startCell: 0, cellWidth: 2, startColumn: 0, endColumn: 2},
		{kind: PartInjected, text: "J", startCell: 2, cellWidth: 1, startColumn: 2, endColumn: 3},
		{kind: PartText, text: "cd", startCell: 3, cellWidth: 2, startColumn: 3, endColumn: 5},
	})
	if got, want := second.Content(), "  Jcd"; got != want {
		t.Fatalf("content: got %q, want %q", got, want)
	}
	if got, want := second.Parts[1].InjectionIndex, 0; got != want {
		t.Fatalf("injection index: got %d, want %d", got, want)
	}
	if got, want := second.Parts[2].InjectionIndex, -1; got != want {
		t.Fatalf("text injection index: got %d, want %d", got, want)
	}
}

func TestLine_MappingAgreesWithTable(t *testing.T) {
	tbl := wrappedInjectionTable()
	for line := 0; line < tbl.OutputLineCount(); line++ {
		res := Line(tbl, "abcd", line, Options{})
		if got, want := res.Columns(), tbl.MaxOutputColumn(line); got != want {
			t.Fatalf("line %d columns: got %d, want %d", line, got, want)
		}
		for col := tbl.MinOutputColumn(line); col < tbl.MaxOutputColumn(line); col++ {
			if got := res.ColumnForCell(res.CellForColumn(col)); got != col {
				t.Fatalf("line %d column %d: hit test returned %d", line, col, got)
			}
		}
	}
}

func TestLine_HitTesting(t *testing.T) {
	res := Line(wrappedInjectionTable(), "abcd", 1, Options{})

	cases := []struct {
		cell int
		want int
	}{
		{cell: -1, want: 2},
		{cell: 0, want: 2},
		{cell: 1, want: 2},
		{cell: 2, want: 2},
		{cell: 4, want: 4},
		{cell: 5, want: 5},
		{cell: 99, want: 5},
	}
	for _, tc := range cases {
		if got := res.ColumnForCell(tc.cell); got != tc.want {
			t.Fatalf("ColumnForCell(%d): got %d, want %d", tc.cell, got, tc.want)
		}
	}
	if got := res.CellForColumn(5); got != 5 {
		t.Fatalf("CellForColumn(eol): got %d, want %d", got, 5)
	}

	part, off, ok := res.PartAt(3)
	if !ok || part != 2 || off != 0 {
		t.Fatalf("PartAt(3): got %d,%d,%v want 2,0,true", part, off, ok)
	}
	part, off, ok = res.PartAt(5)
	if !ok || part != 2 || off != 2 {
		t.Fatalf("PartAt(eol): got %d,%d,%v want 2,2,true", part, off, ok)
	}
}

func TestLine_TabsFollowUnwrappedStops(t *testing.T) {
	res := Line(projection.Identity(2), "\tx", 0, Options{TabSize: 4})
	if got, want := res.Content(), "    x"; got != want {
		t.Fatalf("content: got %q, want %q", got, want)
	}
	if got := res.CellForColumn(1); got != 4 {
		t.Fatalf("cell of x: got %d, want %d", got, 4)
	}
	if got := res.ColumnForCell(2); got != 0 {
		t.Fatalf("cell inside tab: got %d, want %d", got, 0)
	}

	// "ab" | "\tc": the tab starts at unwrapped column 2 and advances 2 cells.
	wrapped := projection.MustNew(projection.Options{Breaks: []int{2, 4}})
	second := Line(wrapped, "ab\tc", 1, Options{TabSize: 4})
	if got, want := second.Content(), "  c"; got != want {
		t.Fatalf("wrapped tab content: got %q, want %q", got, want)
	}
}

func TestLine_WideClusters(t *testing.T) {
	res := Line(projection.Identity(2), "界a", 0, Options{})
	if got := res.Width(); got != 3 {
		t.Fatalf("width: got %d, want %d", got, 3)
	}
	if got := res.CellForColumn(1); got != 2 {
		t.Fatalf("cell of a: got %d, want %d", got, 2)
	}
	if got := res.ColumnForCell(1); got != 0 {
		t.Fatalf("right half of wide cluster: got %d, want %d", got, 0)
	}
}

func TestLine_WhitespaceMarkers(t *testing.T) {
	all := Line(projection.Identity(5), "a b  ", 0, Options{Whitespace: WhitespaceAll})
	if got, want := all.Content(), "a·b··"; got != want {
		t.Fatalf("all markers: got %q, want %q", got, want)
	}
	if got := len(all.Parts); got != 4 {
		t.Fatalf("all markers part count: got %d, want %d", got, 4)
	}

	trailing := Line(projection.Identity(5), "a b  ", 0, Options{Whitespace: WhitespaceTrailing})
	if got, want := trailing.Content(), "a b··"; got != want {
		t.Fatalf("trailing markers: got %q, want %q", got, want)
	}
	if !trailing.Parts[len(trailing.Parts)-1].Whitespace {
		t.Fatalf("trailing part not flagged as whitespace")
	}

	tab := Line(projection.Identity(2), "\tx", 0, Options{Whitespace: WhitespaceAll, TabSize: 4})
	if got, want := tab.Content(), TabMarker+"   x"; got != want {
		t.Fatalf("tab marker: got %q, want %q", got, want)
	}
}

func TestLine_Empty(t *testing.T) {
	res := Line(projection.Identity(0), "", 0, Options{})
	if res.Width() != 0 || res.Columns() != 0 || len(res.Parts) != 0 {
		t.Fatalf("empty line: width=%d columns=%d parts=%d", res.Width(), res.Columns(), len(res.Parts))
	}
	if _, _, ok := res.PartAt(0); ok {
		t.Fatalf("PartAt on empty line reported ok")
	}
	if got := res.ColumnForCell(3); got != 0 {
		t.Fatalf("hit test on empty line: got %d, want 0", got)
	}
}

func testStyle() Style {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	return Style{
		Text:       r.NewStyle(),
		Injected:   r.NewStyle().Italic(true),
		Indent:     r.NewStyle(),
		Whitespace: r.NewStyle().Foreground(lipgloss.Color("#444444")),
		Cursor:     r.NewStyle().Reverse(true),
	}
}

func TestRender_StylesByPartKind(t *testing.T) {
	st := testStyle()
	res := Line(wrappedInjectionTable(), "abcd", 0, Options{})

	got := res.Render(st)
	want := st.Text.Render("ab") + st.Injected.Inherit(st.Text).Render("IN")
	if got != want {
		t.Fatalf("render:\n got: %q\nwant: %q", got, want)
	}

	keyed := st.Text.Underline(true)
	st.InjectedStyleForKey = func(key string) (lipgloss.Style, bool) {
		return keyed, key == "hint"
	}
	got = res.Render(st)
	want = st.Text.Render("ab") + keyed.Inherit(st.Text).Render("IN")
	if got != want {
		t.Fatalf("keyed render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderCursor(t *testing.T) {
	st := testStyle()
	res := Line(wrappedInjectionTable(), "abcd", 0, Options{})
	injected := st.Injected.Inherit(st.Text)

	got := res.RenderCursor(st, 1)
	want := st.Text.Render("a") + st.Cursor.Render("b") + injected.Render("IN")
	if got != want {
		t.Fatalf("cursor inside text:\n got: %q\nwant: %q", got, want)
	}

	got = res.RenderCursor(st, 4)
	want = st.Text.Render("ab") + injected.Render("IN") + st.Cursor.Render(" ")
	if got != want {
		t.Fatalf("cursor at eol:\n got: %q\nwant: %q", got, want)
	}
}
