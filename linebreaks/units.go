package linebreaks

import (
	"strings"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
)

// wrapUnit is one grapheme of the line with injected text. Cells are
// measured on the unwrapped line so tab stops do not move when wrapping.
type wrapUnit struct {
	startCell int
	endCell   int
	width     int

	isWhitespace bool
	isPunct      bool
	breakBefore  bool
	breakAfter   bool
}

func buildUnits(clusters []string, opts Options) []wrapUnit {
	if len(clusters) == 0 {
		return nil
	}

	units := make([]wrapUnit, 0, len(clusters))
	cell := 0
	for _, gr := range clusters {
		w := graphemeutil.Width(gr, cell, opts.TabSize)
		units = append(units, wrapUnit{
			startCell:    cell,
			endCell:      cell + w,
			width:        w,
			isWhitespace: graphemeutil.IsSpace(gr),
			isPunct:      graphemeutil.IsPunct(gr),
			breakBefore:  opts.BreakBefore != "" && strings.Contains(opts.BreakBefore, gr),
			breakAfter:   opts.BreakAfter != "" && strings.Contains(opts.BreakAfter, gr),
		})
		cell += w
	}
	return units
}
