package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
)

// DecodePhoto decodes a JPEG or PNG photo, honouring EXIF orientation.
func DecodePhoto(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return img, nil
}

// fitPhoto scales img to the card's square photo slot.
func fitPhoto(img image.Image) image.Image {
	return imaging.Resize(img, layout.PhotoSize, layout.PhotoSize, imaging.Lanczos)
}

// dataURI encodes photo bytes for an SVG href.
func dataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
