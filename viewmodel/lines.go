package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
	"github.com/iw2rmb/lineproj/linebreaks"
	"github.com/iw2rmb/lineproj/projection"
	"github.com/iw2rmb/lineproj/render"
)

// InjectionProvider returns the injected text of one model line.
type InjectionProvider func(row int, line string) []projection.InjectedText

type Config struct {
	Wrap       linebreaks.Options
	Injections InjectionProvider
	Render     render.Options
}

type projectedLine struct {
	text  string
	table *projection.Table
}

// Lines holds the projection of every model line. Tables are rebuilt, never
// patched, when a line, the injected text or the wrap options change.
type Lines struct {
	cfg   Config
	lines []projectedLine

	// firstViewRow[i] is the view row of model line i's first output line;
	// the final entry is the view line count.
	firstViewRow []int
}

// New splits text into lines and projects each of them.
func New(text string, cfg Config) (*Lines, error) {
	l := &Lines{cfg: cfg}
	if err := l.SetText(text); err != nil {
		return nil, err
	}
	return l, nil
}

// SplitLines splits text on "\n", dropping a trailing "\r" from each line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

// SetText replaces the whole document.
func (l *Lines) SetText(text string) error {
	raw := SplitLines(text)
	lines := make([]projectedLine, len(raw))
	for row, s := range raw {
		tbl, err := l.project(row, s)
		if err != nil {
			return err
		}
		lines[row] = projectedLine{text: s, table: tbl}
	}
	l.lines = lines
	l.reindex()
	return nil
}

// SetLine replaces the text of one model line.
func (l *Lines) SetLine(row int, text string) error {
	if row < 0 || row >= len(l.lines) {
		return fmt.Errorf("set line %d: out of range [0,%d)", row, len(l.lines))
	}
	text = strings.TrimSuffix(text, "\r")
	if strings.Contains(text, "\n") {
		return fmt.Errorf("set line %d: text spans several lines", row)
	}
	tbl, err := l.project(row, text)
	if err != nil {
		return err
	}
	l.lines[row] = projectedLine{text: text, table: tbl}
	l.reindex()
	return nil
}

// SetWrap changes the wrap options and rebuilds every table.
func (l *Lines) SetWrap(opts linebreaks.Options) error {
	prev := l.cfg.Wrap
	l.cfg.Wrap = opts
	if err := l.rebuild(); err != nil {
		l.cfg.Wrap = prev
		return err
	}
	return nil
}

// SetInjections changes the injection provider and rebuilds every table.
func (l *Lines) SetInjections(p InjectionProvider) error {
	prev := l.cfg.Injections
	l.cfg.Injections = p
	if err := l.rebuild(); err != nil {
		l.cfg.Injections = prev
		return err
	}
	return nil
}

// SetRender changes the render options. Tables are unaffected.
func (l *Lines) SetRender(opts render.Options) {
	l.cfg.Render = opts
}

// Config returns the current configuration.
func (l *Lines) Config() Config { return l.cfg }

func (l *Lines) rebuild() error {
	texts := make([]string, len(l.lines))
	for i, ln := range l.lines {
		texts[i] = ln.text
	}
	return l.SetText(strings.Join(texts, "\n"))
}

func (l *Lines) project(row int, text string) (*projection.Table, error) {
	var injections []projection.InjectedText
	if l.cfg.Injections != nil {
		injections = l.cfg.Injections(row, text)
	}
	opts := l.cfg.Wrap
	if opts.TabSize <= 0 {
		opts.TabSize = l.cfg.Render.TabSize
	}
	tbl, err := linebreaks.Compute(text, injections, opts)
	if err != nil {
		return nil, fmt.Errorf("project line %d: %w", row, err)
	}
	return tbl, nil
}

func (l *Lines) reindex() {
	l.firstViewRow = make([]int, len(l.lines)+1)
	for i, ln := range l.lines {
		l.firstViewRow[i+1] = l.firstViewRow[i] + ln.table.OutputLineCount()
	}
}

// LineCount returns the number of model lines.
func (l *Lines) LineCount() int { return len(l.lines) }

// Line returns the raw text of a model line.
func (l *Lines) Line(row int) string {
	return l.lines[l.clampRow(row)].text
}

// Table returns the projection table of a model line.
func (l *Lines) Table(row int) *projection.Table {
	return l.lines[l.clampRow(row)].table
}

// ViewLineCount returns the number of output lines of the whole document.
func (l *Lines) ViewLineCount() int {
	return l.firstViewRow[len(l.lines)]
}

// FirstViewRow returns the view row of a model line's first output line.
func (l *Lines) FirstViewRow(row int) int {
	return l.firstViewRow[l.clampRow(row)]
}

// ModelToView projects a model position. Out-of-range rows and columns
// are clamped.
func (l *Lines) ModelToView(pos Pos, aff projection.Affinity) ViewPos {
	row := l.clampRow(pos.Row)
	out := l.lines[row].table.TranslateToOutputPosition(pos.Col, aff)
	return ViewPos{Row: l.firstViewRow[row] + out.Line, Col: out.Column}
}

// ViewToModel maps a view position back to the model.
func (l *Lines) ViewToModel(vp ViewPos) Pos {
	row, outLine := l.locateViewRow(vp.Row)
	col := l.lines[row].table.TranslateToInputOffset(outLine, vp.Col)
	return Pos{Row: row, Col: col}
}

// NormalizeViewPos moves a view position to a legal cursor stop within its
// model line.
func (l *Lines) NormalizeViewPos(vp ViewPos, aff projection.Affinity) ViewPos {
	row, outLine := l.locateViewRow(vp.Row)
	out := l.lines[row].table.NormalizeOutputPosition(outLine, vp.Col, aff)
	return ViewPos{Row: l.firstViewRow[row] + out.Line, Col: out.Column}
}

// ViewLineMinColumn returns the first column a cursor may occupy on a view
// row.
func (l *Lines) ViewLineMinColumn(viewRow int) int {
	row, outLine := l.locateViewRow(viewRow)
	return l.lines[row].table.MinOutputColumn(outLine)
}

// ViewLineMaxColumn returns the column after the last cluster of a view
// row.
func (l *Lines) ViewLineMaxColumn(viewRow int) int {
	row, outLine := l.locateViewRow(viewRow)
	return l.lines[row].table.MaxOutputColumn(outLine)
}

// ViewLineContent returns the unstyled text of a view row: indent, source
// and injected text, tabs kept as-is.
func (l *Lines) ViewLineContent(viewRow int) string {
	row, outLine := l.locateViewRow(viewRow)
	ln := l.lines[row]
	composed := ln.table.Compose(graphemeutil.Split(ln.text))

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", ln.table.MinOutputColumn(outLine)))
	start := ln.table.LineStart(outLine)
	end := ln.table.BreakOffsets()[outLine]
	sb.WriteString(graphemeutil.Join(composed[start:end]))
	return sb.String()
}

// InjectedTextAt returns the injected text touching a view position.
func (l *Lines) InjectedTextAt(vp ViewPos) (projection.InjectedText, bool) {
	row, outLine := l.locateViewRow(vp.Row)
	return l.lines[row].table.InjectedTextAt(outLine, vp.Col)
}

// RenderViewLine lays out a view row for drawing and hit testing.
func (l *Lines) RenderViewLine(viewRow int) render.Result {
	row, outLine := l.locateViewRow(viewRow)
	ln := l.lines[row]
	opts := l.cfg.Render
	if opts.TabSize <= 0 {
		opts.TabSize = l.cfg.Wrap.TabSize
	}
	return render.Line(ln.table, ln.text, outLine, opts)
}

// HitTest maps a cell on a view row to a model position.
func (l *Lines) HitTest(viewRow, cell int) Pos {
	res := l.RenderViewLine(viewRow)
	return l.ViewToModel(ViewPos{Row: viewRow, Col: res.ColumnForCell(cell)})
}

// locateViewRow finds the model line and output line index of a view row.
// Rows outside the view are clamped.
func (l *Lines) locateViewRow(viewRow int) (row, outLine int) {
	viewRow = clampInt(viewRow, 0, l.ViewLineCount()-1)
	row = sort.Search(len(l.lines), func(i int) bool {
		return l.firstViewRow[i+1] > viewRow
	})
	row = l.clampRow(row)
	return row, viewRow - l.firstViewRow[row]
}

func (l *Lines) clampRow(row int) int {
	return clampInt(row, 0, len(l.lines)-1)
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
