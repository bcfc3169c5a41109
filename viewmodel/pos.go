package viewmodel

import "fmt"

// Pos points into the model by (row, grapheme column).
type Pos struct {
	Row int
	Col int
}

// ViewPos points into the wrapped view by (view row, output column).
type ViewPos struct {
	Row int
	Col int
}

func (p Pos) String() string     { return fmt.Sprintf("%d:%d", p.Row, p.Col) }
func (p ViewPos) String() string { return fmt.Sprintf("v%d:%d", p.Row, p.Col) }

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

func CompareViewPos(a, b ViewPos) int {
	return ComparePos(Pos(a), Pos(b))
}
