package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/eleitos/pkg/render"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/sink"
)

// VectorDocument is an [Application] that assembles the template in memory
// and saves it as SVG, or as PDF through rsvg-convert when the path ends in
// ".pdf".
type VectorDocument struct {
	machine
	page  layout.Page
	cards []layout.Placement
}

var _ Application = (*VectorDocument)(nil)

// NewVectorDocument returns an unstarted document application.
func NewVectorDocument() *VectorDocument { return &VectorDocument{} }

// Start moves the document to the started state.
func (v *VectorDocument) Start(context.Context) error { return v.advance("start") }

// CreateDocument opens an empty page of the given size.
func (v *VectorDocument) CreateDocument(_ context.Context, page layout.Page) error {
	if err := v.advance("create"); err != nil {
		return err
	}
	if page.Width <= 0 || page.Height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", page.Width, page.Height)
	}
	v.page = page
	v.cards = v.cards[:0]
	return nil
}

// PlaceCard adds card to the open page.
func (v *VectorDocument) PlaceCard(_ context.Context, card layout.Placement) error {
	if err := v.advance("place"); err != nil {
		return err
	}
	v.cards = append(v.cards, card)
	return nil
}

// Save writes the page as SVG, or as PDF when path ends in .pdf.
func (v *VectorDocument) Save(ctx context.Context, path string) error {
	if err := v.advance("save"); err != nil {
		return err
	}
	data := sink.RenderTemplateSVG(v.cards, sink.WithEmbeddedFont())
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pdf, err := render.ToPDF(ctx, data)
		if err != nil {
			return err
		}
		data = pdf
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Close discards the open page.
func (v *VectorDocument) Close(context.Context) error {
	if err := v.advance("close"); err != nil {
		return err
	}
	v.cards = nil
	return nil
}

// Stop ends the session from any state.
func (v *VectorDocument) Stop(context.Context) error {
	v.stop()
	return nil
}
