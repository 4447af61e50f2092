package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/eleitos/pkg/candidate"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

func testRecord() candidate.Record {
	return candidate.Record{
		FullName:         "ANA & MARIA <SILVA>",
		BallotName:       "ANA",
		BallotNumber:     15,
		Party:            "MDB",
		Office:           "Prefeito",
		OfficeCode:       candidate.OfficeMayor,
		MunicipalityCode: "81736",
	}
}

// redPhoto returns a solid red PNG of the given size.
func redPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func isRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r > 0xf000 && g < 0x1000 && b < 0x1000
}

func TestRenderPNGWithPhoto(t *testing.T) {
	out, err := RenderPNG(testRecord(), redPhoto(t, 50, 80))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decodePNG(t, out)
	if b := img.Bounds(); b.Dx() != layout.CardWidth || b.Dy() != layout.CardHeight {
		t.Fatalf("bounds = %v", b)
	}
	if !isRed(img.At(layout.PhotoX+100, layout.PhotoY+100)) {
		t.Error("photo area should hold the photo")
	}
	if isRed(img.At(layout.PhotoX-5, layout.PhotoY+100)) || isRed(img.At(layout.PhotoX+layout.PhotoSize+5, layout.PhotoY+100)) {
		t.Error("photo should be resized to the slot")
	}
}

func TestRenderPNGWithoutPhoto(t *testing.T) {
	out, err := RenderPNG(testRecord(), nil)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decodePNG(t, out)
	r, g, b, _ := img.At(layout.PhotoX+100, layout.PhotoY+100).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("photo area should be blank white")
	}

	// Some dark pixel must exist on every text line.
	for i := range layout.CardLines(testRecord()) {
		y := int(layout.LineY(i)) + 10
		found := false
		for x := layout.TextX; x < layout.CardWidth && !found; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				found = true
			}
		}
		if !found {
			t.Errorf("line %d not drawn inside the card", i)
		}
	}
}

func TestRenderPNGBadPhoto(t *testing.T) {
	if _, err := RenderPNG(testRecord(), []byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestRenderSVG(t *testing.T) {
	photo := redPhoto(t, 4, 4)
	svg := string(RenderSVG(testRecord(), photo))

	if n := strings.Count(svg, "<text "); n != 7 {
		t.Errorf("text elements = %d, want 7", n)
	}
	if !strings.Contains(svg, `href="data:image/png;base64,`) {
		t.Error("photo should be embedded as a data URI")
	}
	if !strings.Contains(svg, fmt.Sprintf(`<image x="%d" y="%d" width="%d" height="%d"`, layout.PhotoX, layout.PhotoY, layout.PhotoSize, layout.PhotoSize)) {
		t.Error("photo placement differs from the raster card")
	}
	if !strings.Contains(svg, "Nome: ANA &amp; MARIA &lt;SILVA&gt;") {
		t.Error("text should be escaped")
	}
	if !strings.Contains(svg, `y="420"`) || !strings.Contains(svg, "Cidade/UF: 81736") {
		t.Error("seventh line missing")
	}

	if strings.Contains(string(RenderSVG(testRecord(), nil)), "<image") {
		t.Error("no image element expected without a photo")
	}
}

func placements(n int) []layout.Placement {
	labels := make([]layout.Label, n)
	for i := range labels {
		labels[i] = layout.Label{Name: fmt.Sprintf("CAND %d", i), Info: "15 - MDB - Vereador"}
	}
	return layout.Place(labels)
}

func TestRenderTemplateSVG(t *testing.T) {
	ps := placements(61)
	links := map[int]string{0: "CAND_0_81736.svg"}
	svg := string(RenderTemplateSVG(ps, WithCardLinks(links)))

	if !strings.Contains(svg, `width="550mm" height="329mm"`) {
		t.Error("page size not in mm")
	}
	if n := strings.Count(svg, "<rect "); n != 60 {
		t.Errorf("rects = %d, want 60", n)
	}
	if n := strings.Count(svg, `<a href=`); n != 1 {
		t.Errorf("links = %d, want 1", n)
	}
	if !strings.Contains(svg, `href="CAND_0_81736.svg"`) {
		t.Error("missing card link")
	}
	// First cell frame top-left: x = 73.453-50.7, y = 329-(303.268+9.65).
	if !strings.Contains(svg, `<rect x="22.753" y="16.082"`) {
		t.Error("first frame not at the flipped page position")
	}
	if !strings.Contains(svg, `fill="rgb(220,0,0)" stroke="rgb(255,255,255)"`) {
		t.Error("name label colours missing")
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font should only be embedded on request")
	}
	if !strings.Contains(string(RenderTemplateSVG(ps[:1], WithEmbeddedFont())), "@font-face") {
		t.Error("WithEmbeddedFont should add @font-face")
	}
}

func TestRenderTemplateJSON(t *testing.T) {
	data, err := RenderTemplateJSON(placements(16))
	if err != nil {
		t.Fatalf("RenderTemplateJSON: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Cells) != 16 || out.Unit != "mm" {
		t.Fatalf("out = %+v", out)
	}
	if c := out.Cells[15]; c.Column != 1 || c.Row != 0 || c.X != 197.453 {
		t.Errorf("cell 15 = %+v", c)
	}
}
