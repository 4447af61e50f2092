package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/matzehuels/eleitos/pkg/candidate"
	"github.com/matzehuels/eleitos/pkg/fonts"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// RenderPNG draws the raster card of r. photo may be nil; undecodable photo
// bytes are reported as an error so the caller can retry without them.
func RenderPNG(r candidate.Record, photo []byte) ([]byte, error) {
	dc := gg.NewContext(layout.CardWidth, layout.CardHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if photo != nil {
		img, err := DecodePhoto(photo)
		if err != nil {
			return nil, err
		}
		dc.DrawImage(fitPhoto(img), layout.PhotoX, layout.PhotoY)
	}

	dc.SetFontFace(fonts.Face(fonts.Bold(), layout.CardFontSize))
	dc.SetRGB(0, 0, 0)
	for i, line := range layout.CardLines(r) {
		// ay=1 places the top of the glyph box at y.
		dc.DrawStringAnchored(line, layout.TextX, layout.LineY(i), 0, 1)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
