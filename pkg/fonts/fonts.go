// Package fonts provides the typefaces used to draw tarjeta cards.
//
// The Go fonts are compiled into the binary, so raster cards render the same
// on every machine without a system font lookup.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// CSS font-family lists for vector output. The print template names the
// typefaces of the production layout and falls back to the embedded Go fonts.
const (
	FontFamily     = "Go"
	CardFontFamily = `'DejaVu Sans', 'Go', sans-serif`
	NameFontFamily = `'Cooper Black', 'Go', serif`
	InfoFontFamily = `Arial, 'Go', sans-serif`
)

var (
	regularOnce sync.Once
	regular     *truetype.Font
	boldOnce    sync.Once
	bold        *truetype.Font

	boldBase64     string
	boldBase64Once sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() *truetype.Font {
	regularOnce.Do(func() { regular = mustParse(goregular.TTF) })
	return regular
}

// Bold returns the parsed Go Bold font.
func Bold() *truetype.Font {
	boldOnce.Do(func() { bold = mustParse(gobold.TTF) })
	return bold
}

// Face returns a face of f at size points, 72 DPI.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// BoldTTFBase64 returns the Go Bold TTF as base64 for an SVG @font-face rule.
func BoldTTFBase64() string {
	boldBase64Once.Do(func() {
		boldBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return boldBase64
}

// mustParse panics because the embedded fonts are known-good.
func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic("fonts: " + err.Error())
	}
	return f
}
