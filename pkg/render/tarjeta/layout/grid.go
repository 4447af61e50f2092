package layout

import "unicode/utf8"

// Print template constants, in millimetres unless noted.
const (
	PageWidth  = 550.0
	PageHeight = 329.0
	PageUnit   = "mm"

	Columns  = 4
	Rows     = 15
	Capacity = Columns * Rows

	FirstColumnCenterX = 73.453
	FirstRowCenterY    = 303.268
	ColumnPitch        = 124.0
	RowPitch           = -19.823 // rows stack downwards on the page

	CellWidth    = 101.4
	CellHeight   = 19.3
	OutlineWidth = 0.0762

	NameOffsetY = 2.687
	InfoOffsetY = -5.064

	NameFontSize = 22.154 // pt
	InfoFontSize = 9.934  // pt

	// LabelOutlineWidth is the white stroke painted behind both labels.
	LabelOutlineWidth = 1.0

	MaxTextWidth   = 93.0
	BaseNameLength = 10
	BaseNameWidth  = 84.0
)

// Label colours as RGB.
var (
	NameColor    = [3]uint8{220, 0, 0}
	InfoColor    = [3]uint8{0, 0, 0}
	OutlineColor = [3]uint8{255, 255, 255}
)

// Cell is a grid coordinate.
type Cell struct {
	Column, Row int
}

// Valid reports whether c lies inside the 4x15 grid.
func (c Cell) Valid() bool {
	return c.Column >= 0 && c.Column < Columns && c.Row >= 0 && c.Row < Rows
}

// Point is a position in page space.
type Point struct {
	X, Y float64
}

// Center returns the page-space centre of c. ok is false outside the grid.
func Center(c Cell) (p Point, ok bool) {
	if !c.Valid() {
		return Point{}, false
	}
	return Point{
		X: FirstColumnCenterX + float64(c.Column)*ColumnPitch,
		Y: FirstRowCenterY + float64(c.Row)*RowPitch,
	}, true
}

// CellAt returns the cell of the i-th candidate in fill order. ok is false
// once the grid is full.
func CellAt(i int) (Cell, bool) {
	if i < 0 || i >= Capacity {
		return Cell{}, false
	}
	return Cell{Column: i / Rows, Row: i % Rows}, true
}

// Assign returns the cells for n candidates in input order, capped at
// [Capacity].
func Assign(n int) []Cell {
	n = min(max(n, 0), Capacity)
	cells := make([]Cell, n)
	for i := range cells {
		cells[i], _ = CellAt(i)
	}
	return cells
}

// Placement is everything needed to draw one template cell.
type Placement struct {
	Index    int // position in the input
	Cell     Cell
	Center   Point
	Frame    Rect
	Name     string
	NamePos  Point // label centre
	NameSize float64
	Info     string
	InfoPos  Point // label centre
}

// Label is the pair of strings printed in a template cell.
type Label struct {
	Name string
	Info string
}

// Place lays out labels in fill order. Labels past the grid capacity are
// dropped.
func Place(labels []Label) []Placement {
	cells := Assign(len(labels))
	out := make([]Placement, len(cells))
	for i, c := range cells {
		ctr, _ := Center(c)
		out[i] = Placement{
			Index:    i,
			Cell:     c,
			Center:   ctr,
			Frame:    RectAround(ctr.X, ctr.Y, CellWidth, CellHeight),
			Name:     labels[i].Name,
			NamePos:  Point{X: ctr.X, Y: ctr.Y + NameOffsetY},
			NameSize: FitNameSize(labels[i].Name),
			Info:     labels[i].Info,
			InfoPos:  Point{X: ctr.X, Y: ctr.Y + InfoOffsetY},
		}
	}
	return out
}

// EstimatedNameWidth estimates the printed width of name at [NameFontSize],
// scaling linearly from a reference name of [BaseNameLength] characters
// measuring [BaseNameWidth].
func EstimatedNameWidth(name string) float64 {
	return float64(utf8.RuneCountInString(name)) * BaseNameWidth / BaseNameLength
}

// FitNameSize returns [NameFontSize], reduced proportionally when the name
// would be wider than [MaxTextWidth].
func FitNameSize(name string) float64 {
	w := EstimatedNameWidth(name)
	if w <= MaxTextWidth {
		return NameFontSize
	}
	return NameFontSize * MaxTextWidth / w
}

// Page is a document page size.
type Page struct {
	Width, Height float64
	Unit          string
}

// TemplatePage is the print template page.
func TemplatePage() Page {
	return Page{Width: PageWidth, Height: PageHeight, Unit: PageUnit}
}

// ToSVG converts a page-space point to SVG user space (origin top-left).
func (p Page) ToSVG(pt Point) Point {
	return Point{X: pt.X, Y: p.Height - pt.Y}
}

// RectToSVG returns the top-left corner of r in SVG user space.
func (p Page) RectToSVG(r Rect) Point {
	return Point{X: r.Left, Y: p.Height - r.Top}
}
