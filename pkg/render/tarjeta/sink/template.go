package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/eleitos/pkg/fonts"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// ptToMM converts a font size in points to millimetres.
const ptToMM = 25.4 / 72

// TemplateOption configures [RenderTemplateSVG].
type TemplateOption func(*templateRenderer)

type templateRenderer struct {
	links map[int]string
	fonts bool
}

// WithCardLinks makes cell i link to links[i], typically the card SVG file.
func WithCardLinks(links map[int]string) TemplateOption {
	return func(r *templateRenderer) { r.links = links }
}

// WithEmbeddedFont embeds the fallback bold font so the template renders the
// same without the production typefaces installed.
func WithEmbeddedFont() TemplateOption {
	return func(r *templateRenderer) { r.fonts = true }
}

// RenderTemplateSVG renders the print template page. Coordinates are
// millimetres; placements are converted from page space with the y axis
// flipped.
func RenderTemplateSVG(placements []layout.Placement, opts ...TemplateOption) []byte {
	r := templateRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	page := layout.TemplatePage()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g%s" height="%g%s">`+"\n",
		page.Width, page.Height, page.Width, page.Unit, page.Height, page.Unit)
	if r.fonts {
		fmt.Fprintf(&buf, `  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); font-weight: bold; }</style></defs>`+"\n",
			fonts.FontFamily, fonts.BoldTTFBase64())
	}

	for _, p := range placements {
		renderCell(&buf, page, p, r.links[p.Index])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCell(buf *bytes.Buffer, page layout.Page, p layout.Placement, link string) {
	if link != "" {
		fmt.Fprintf(buf, `  <a href="%s">`+"\n", EscapeXML(link))
	}
	fmt.Fprintf(buf, `  <g id="cell-%d-%d">`+"\n", p.Cell.Column, p.Cell.Row)

	tl := page.RectToSVG(p.Frame)
	fmt.Fprintf(buf, `    <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="none" stroke="black" stroke-width="%g"/>`+"\n",
		tl.X, tl.Y, p.Frame.Width(), p.Frame.Height(), layout.OutlineWidth)

	renderLabel(buf, page.ToSVG(p.NamePos), p.Name, fonts.NameFontFamily, p.NameSize, "normal", layout.NameColor)
	renderLabel(buf, page.ToSVG(p.InfoPos), p.Info, fonts.InfoFontFamily, layout.InfoFontSize, "bold", layout.InfoColor)

	buf.WriteString("  </g>\n")
	if link != "" {
		buf.WriteString("  </a>\n")
	}
}

// renderLabel draws text centred on at, with the white outline painted
// behind the fill.
func renderLabel(buf *bytes.Buffer, at layout.Point, text, family string, sizePt float64, weight string, fill [3]uint8) {
	fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.3f" font-weight="%s" fill="%s" stroke="%s" stroke-width="%g" paint-order="stroke">%s</text>`+"\n",
		at.X, at.Y, EscapeXML(family), sizePt*ptToMM, weight, rgb(fill), rgb(layout.OutlineColor), layout.LabelOutlineWidth, EscapeXML(text))
}
