package viewmodel

import (
	"reflect"
	"testing"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
	"github.com/iw2rmb/lineproj/linebreaks"
	"github.com/iw2rmb/lineproj/projection"
)

func newTestLines(t *testing.T) *Lines {
	t.Helper()
	l, err := New("abcd\n\nhello world", Config{
		Wrap: linebreaks.Options{Mode: linebreaks.WrapWord, Column: 6},
		Injections: func(row int, line string) []projection.InjectedText {
			if row == 0 {
				return []projection.InjectedText{{Offset: 2, Content: "INJ"}}
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestLines_Counts(t *testing.T) {
	l := newTestLines(t)
	if got := l.LineCount(); got != 3 {
		t.Fatalf("line count: got %d, want %d", got, 3)
	}
	if got := l.ViewLineCount(); got != 5 {
		t.Fatalf("view line count: got %d, want %d", got, 5)
	}
	for row, want := range []int{0, 2, 3} {
		if got := l.FirstViewRow(row); got != want {
			t.Fatalf("first view row of %d: got %d, want %d", row, got, want)
		}
	}
}

func TestLines_ViewLineContent(t *testing.T) {
	l := newTestLines(t)
	want := []string{"abINJc", "d", "", "hello ", "world"}
	for row, w := range want {
		if got := l.ViewLineContent(row); got != w {
			t.Fatalf("view line %d: got %q, want %q", row, got, w)
		}
		if got := l.ViewLineMaxColumn(row); got != graphemeutil.Count(w) {
			t.Fatalf("view line %d max column: got %d, want %d", row, got, graphemeutil.Count(w))
		}
	}
}

func TestLines_ModelToView(t *testing.T) {
	l := newTestLines(t)
	cases := []struct {
		pos  Pos
		aff  projection.Affinity
		want ViewPos
	}{
		{pos: Pos{Row: 0, Col: 2}, aff: projection.AffinityNone, want: ViewPos{Row: 0, Col: 2}},
		{pos: Pos{Row: 0, Col: 2}, aff: projection.AffinityRight, want: ViewPos{Row: 0, Col: 5}},
		{pos: Pos{Row: 0, Col: 3}, aff: projection.AffinityNone, want: ViewPos{Row: 1, Col: 0}},
		{pos: Pos{Row: 0, Col: 3}, aff: projection.AffinityLeft, want: ViewPos{Row: 0, Col: 6}},
		{pos: Pos{Row: 1, Col: 0}, aff: projection.AffinityNone, want: ViewPos{Row: 2, Col: 0}},
		{pos: Pos{Row: 2, Col: 6}, aff: projection.AffinityNone, want: ViewPos{Row: 4, Col: 0}},
		{pos: Pos{Row: 2, Col: 6}, aff: projection.AffinityLeft, want: ViewPos{Row: 3, Col: 6}},
		{pos: Pos{Row: 9, Col: 99}, aff: projection.AffinityNone, want: ViewPos{Row: 4, Col: 5}},
	}
	for _, tc := range cases {
		if got := l.ModelToView(tc.pos, tc.aff); got != tc.want {
			t.Fatalf("ModelToView(%v, %v): got %v, want %v", tc.pos, tc.aff, got, tc.want)
		}
	}
}

func TestLines_ViewToModel(t *testing.T) {
	l := newTestLines(t)
	cases := []struct {
		vp   ViewPos
		want Pos
	}{
		{vp: ViewPos{Row: 4, Col: 3}, want: Pos{Row: 2, Col: 9}},
		{vp: ViewPos{Row: 0, Col: 3}, want: Pos{Row: 0, Col: 2}},
		{vp: ViewPos{Row: 1, Col: 1}, want: Pos{Row: 0, Col: 4}},
		{vp: ViewPos{Row: 2, Col: 7}, want: Pos{Row: 1, Col: 0}},
		{vp: ViewPos{Row: 99, Col: 0}, want: Pos{Row: 2, Col: 6}},
		{vp: ViewPos{Row: -3, Col: 1}, want: Pos{Row: 0, Col: 1}},
	}
	for _, tc := range cases {
		if got := l.ViewToModel(tc.vp); got != tc.want {
			t.Fatalf("ViewToModel(%v): got %v, want %v", tc.vp, got, tc.want)
		}
	}
}

func TestLines_RoundTripEveryPosition(t *testing.T) {
	l := newTestLines(t)
	affs := []projection.Affinity{projection.AffinityNone, projection.AffinityLeft, projection.AffinityRight}
	for row := 0; row < l.LineCount(); row++ {
		n := graphemeutil.Count(l.Line(row))
		for col := 0; col <= n; col++ {
			for _, aff := range affs {
				pos := Pos{Row: row, Col: col}
				vp := l.ModelToView(pos, aff)
				if got := l.ViewToModel(vp); got != pos {
					t.Fatalf("round trip of %v (%v) via %v: got %v", pos, aff, vp, got)
				}
			}
		}
	}
}

func TestLines_NormalizeAndInjectedText(t *testing.T) {
	l := newTestLines(t)
	if got, want := l.NormalizeViewPos(ViewPos{Row: 0, Col: 3}, projection.AffinityNone), (ViewPos{Row: 0, Col: 2}); got != want {
		t.Fatalf("normalize inside injected text: got %v, want %v", got, want)
	}
	if got, want := l.NormalizeViewPos(ViewPos{Row: 1, Col: 0}, projection.AffinityLeft), (ViewPos{Row: 0, Col: 6}); got != want {
		t.Fatalf("normalize across wrap: got %v, want %v", got, want)
	}
	in, ok := l.InjectedTextAt(ViewPos{Row: 0, Col: 3})
	if !ok || in.Content != "INJ" {
		t.Fatalf("injected text: got %+v, %v", in, ok)
	}
	if _, ok := l.InjectedTextAt(ViewPos{Row: 3, Col: 1}); ok {
		t.Fatalf("unexpected injected text on plain line")
	}
}

func TestLines_HitTest(t *testing.T) {
	l := newTestLines(t)
	if got, want := l.HitTest(4, 2), (Pos{Row: 2, Col: 8}); got != want {
		t.Fatalf("hit test: got %v, want %v", got, want)
	}
	if got, want := l.HitTest(0, 4), (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("hit test on injected text: got %v, want %v", got, want)
	}
	if got, want := l.HitTest(3, 40), (Pos{Row: 2, Col: 6}); got != want {
		t.Fatalf("hit test past end of wrapped row: got %v, want %v", got, want)
	}
}

func TestLines_Rebuilds(t *testing.T) {
	l := newTestLines(t)

	if err := l.SetLine(2, "hi"); err != nil {
		t.Fatalf("SetLine: %v", err)
	}
	if got := l.ViewLineCount(); got != 4 {
		t.Fatalf("view lines after SetLine: got %d, want %d", got, 4)
	}
	if err := l.SetLine(9, "x"); err == nil {
		t.Fatalf("SetLine out of range: want error")
	}
	if err := l.SetLine(0, "a\nb"); err == nil {
		t.Fatalf("SetLine with newline: want error")
	}

	if err := l.SetWrap(linebreaks.Options{Mode: linebreaks.WrapNone}); err != nil {
		t.Fatalf("SetWrap: %v", err)
	}
	if got := l.ViewLineCount(); got != 3 {
		t.Fatalf("view lines without wrap: got %d, want %d", got, 3)
	}

	if err := l.SetInjections(nil); err != nil {
		t.Fatalf("SetInjections: %v", err)
	}
	if l.Table(0).HasInjections() {
		t.Fatalf("table kept injections after provider removal")
	}
	if got := l.ViewLineContent(0); got != "abcd" {
		t.Fatalf("content without injections: got %q, want %q", got, "abcd")
	}
}

func TestSplitLines(t *testing.T) {
	if got, want := SplitLines("a\r\nb\n"), []string{"a", "b", ""}; !reflect.DeepEqual(got, want) {
		t.Fatalf("split: got %q, want %q", got, want)
	}
}

func TestComparePos(t *testing.T) {
	if ComparePos(Pos{Row: 0, Col: 5}, Pos{Row: 1, Col: 0}) != -1 {
		t.Fatalf("row ordering")
	}
	if CompareViewPos(ViewPos{Row: 2, Col: 3}, ViewPos{Row: 2, Col: 1}) != 1 {
		t.Fatalf("column ordering")
	}
}
