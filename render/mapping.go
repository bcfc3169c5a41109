package render

import "strings"

// Width returns the number of cells the line occupies.
func (r Result) Width() int { return len(r.cellCol) }

// Columns returns the output column after the last cluster.
func (r Result) Columns() int { return len(r.clusters) }

// Content returns the rendered line without styling.
func (r Result) Content() string {
	var sb strings.Builder
	for _, p := range r.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// CellForColumn returns the first cell of the cluster at output column col.
// The column after the last cluster maps to Width.
func (r Result) CellForColumn(col int) int {
	col = clampInt(col, 0, len(r.clusters))
	if col == len(r.clusters) {
		return r.Width()
	}
	return r.clusters[col].startCell
}

// ColumnForCell hit-tests cell x. Cells inside a cluster map to that
// cluster's column, cells inside the wrapped indent map to the first
// column after it, and cells past the end map to Columns.
func (r Result) ColumnForCell(x int) int {
	if x < 0 {
		x = 0
	}
	if x >= len(r.cellCol) {
		return len(r.clusters)
	}
	col := r.cellCol[x]
	if col < r.minColumn {
		return r.minColumn
	}
	return col
}

// PartAt locates output column col inside the parts: the index of the part
// and the cluster offset within it. The column after the last cluster
// resolves to the end of the last part. ok is false for an empty line.
func (r Result) PartAt(col int) (part, offset int, ok bool) {
	if len(r.Parts) == 0 {
		return 0, 0, false
	}
	col = clampInt(col, 0, len(r.clusters))
	if col == len(r.clusters) {
		last := len(r.Parts) - 1
		p := r.Parts[last]
		return last, p.EndColumn - p.StartColumn, true
	}
	part = r.clusters[col].part
	return part, col - r.Parts[part].StartColumn, true
}
