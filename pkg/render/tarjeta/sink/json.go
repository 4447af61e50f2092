package sink

import (
	"encoding/json"

	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

type jsonOutput struct {
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Unit    string     `json:"unit"`
	Columns int        `json:"columns"`
	Rows    int        `json:"rows"`
	Cells   []jsonCell `json:"cells"`
}

type jsonCell struct {
	Index    int     `json:"index"`
	Column   int     `json:"column"`
	Row      int     `json:"row"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name"`
	NameSize float64 `json:"name_size"`
	Info     string  `json:"info"`
}

// RenderTemplateJSON exports placements in page space.
func RenderTemplateJSON(placements []layout.Placement) ([]byte, error) {
	page := layout.TemplatePage()
	out := jsonOutput{
		Width:   page.Width,
		Height:  page.Height,
		Unit:    page.Unit,
		Columns: layout.Columns,
		Rows:    layout.Rows,
		Cells:   make([]jsonCell, len(placements)),
	}
	for i, p := range placements {
		out.Cells[i] = jsonCell{
			Index:    p.Index,
			Column:   p.Cell.Column,
			Row:      p.Cell.Row,
			X:        p.Center.X,
			Y:        p.Center.Y,
			Name:     p.Name,
			NameSize: p.NameSize,
			Info:     p.Info,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
