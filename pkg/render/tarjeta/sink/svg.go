package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/eleitos/pkg/candidate"
	"github.com/matzehuels/eleitos/pkg/fonts"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// RenderSVG renders the vector card of r with the same geometry as
// [RenderPNG]. photo may be nil.
func RenderSVG(r candidate.Record, photo []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%dpx" height="%dpx">`+"\n",
		layout.CardWidth, layout.CardHeight, layout.CardWidth, layout.CardHeight)
	buf.WriteString(`  <rect x="0" y="0" width="100%" height="100%" fill="white"/>` + "\n")

	if photo != nil {
		fmt.Fprintf(&buf, `  <image x="%d" y="%d" width="%d" height="%d" preserveAspectRatio="none" href="%s"/>`+"\n",
			layout.PhotoX, layout.PhotoY, layout.PhotoSize, layout.PhotoSize, dataURI(photo))
	}

	for i, line := range layout.CardLines(r) {
		fmt.Fprintf(&buf, `  <text x="%d" y="%.0f" font-family="%s" font-size="%.0f" font-weight="bold" dominant-baseline="text-before-edge" fill="black">%s</text>`+"\n",
			layout.TextX, layout.LineY(i), EscapeXML(fonts.CardFontFamily), layout.CardFontSize, EscapeXML(line))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
