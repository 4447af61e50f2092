package tarjeta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eleitos/pkg/candidate"
	"github.com/matzehuels/eleitos/pkg/render"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/layout"
	"github.com/matzehuels/eleitos/pkg/render/tarjeta/sink"
)

const (
	DefaultOutputDir = "tarjetas"
	MasterFile       = "tarjetas_master.svg"
	PreviewFile      = "tarjetas_master.png"
	LayoutFile       = "tarjetas_layout.json"

	previewScale = 2.0
)

// Fetcher downloads photo bytes.
type Fetcher interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// Generator writes cards and the aggregate template to OutputDir.
type Generator struct {
	Fetch     Fetcher
	OutputDir string
	Logger    *log.Logger
}

// NewGenerator creates a generator. An empty dir means [DefaultOutputDir].
func NewGenerator(fetch Fetcher, dir string, logger *log.Logger) *Generator {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{Fetch: fetch, OutputDir: dir, Logger: logger}
}

// CardFiles are the files written for one record.
type CardFiles struct {
	Name string
	PNG  string
	SVG  string
}

// Output lists everything a [Generator.Generate] call wrote.
type Output struct {
	Cards    []CardFiles
	Master   string
	Preview  string // empty when rsvg-convert is unavailable
	Layout   string
	Placed   int // cards on the template
	Excluded int // cards beyond the template capacity
}

// Card writes the PNG and SVG cards of r.
func (g *Generator) Card(ctx context.Context, r candidate.Record) (CardFiles, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return CardFiles{}, fmt.Errorf("create %s: %w", g.OutputDir, err)
	}
	logger := g.Logger.With("candidate", r.BallotName)

	photo := g.photo(ctx, logger, r)
	pngData, err := sink.RenderPNG(r, photo)
	if err != nil {
		logger.Warn("photo unusable, rendering without it", "err", err)
		photo = nil
		if pngData, err = sink.RenderPNG(r, nil); err != nil {
			return CardFiles{}, err
		}
	}

	base := filepath.Join(g.OutputDir, r.CardName())
	files := CardFiles{Name: r.BallotName, PNG: base + ".png", SVG: base + ".svg"}
	if err := os.WriteFile(files.PNG, pngData, 0o644); err != nil {
		return CardFiles{}, fmt.Errorf("write %s: %w", files.PNG, err)
	}
	if err := os.WriteFile(files.SVG, sink.RenderSVG(r, photo), 0o644); err != nil {
		return CardFiles{}, fmt.Errorf("write %s: %w", files.SVG, err)
	}
	logger.Info("card written", "png", files.PNG, "svg", files.SVG)
	return files, nil
}

func (g *Generator) photo(ctx context.Context, logger *log.Logger, r candidate.Record) []byte {
	if g.Fetch == nil || r.PhotoURL == "" {
		logger.Warn("no photo source")
		return nil
	}
	data, err := g.Fetch.GetBytes(ctx, r.PhotoURL)
	if err != nil {
		logger.Warn("photo download failed", "url", r.PhotoURL, "err", err)
		return nil
	}
	return data
}

// Generate writes a card per record followed by the template files.
func (g *Generator) Generate(ctx context.Context, records []candidate.Record) (*Output, error) {
	out := &Output{}
	links := make(map[int]string, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		files, err := g.Card(ctx, r)
		if err != nil {
			return out, err
		}
		out.Cards = append(out.Cards, files)
		links[i] = filepath.Base(files.SVG)
	}

	placements := layout.Place(Labels(records))
	out.Placed = len(placements)
	out.Excluded = len(records) - out.Placed
	if out.Excluded > 0 {
		g.Logger.Warn("template full, candidates left out", "placed", out.Placed, "excluded", out.Excluded)
	}

	out.Master = filepath.Join(g.OutputDir, MasterFile)
	master := sink.RenderTemplateSVG(placements, sink.WithCardLinks(links))
	if err := os.WriteFile(out.Master, master, 0o644); err != nil {
		return out, fmt.Errorf("write %s: %w", out.Master, err)
	}
	out.Preview = g.preview(ctx, master)
	data, err := sink.RenderTemplateJSON(placements)
	if err != nil {
		return out, err
	}
	out.Layout = filepath.Join(g.OutputDir, LayoutFile)
	if err := os.WriteFile(out.Layout, data, 0o644); err != nil {
		return out, fmt.Errorf("write %s: %w", out.Layout, err)
	}
	g.Logger.Info("template written", "path", out.Master, "cards", out.Placed)
	return out, nil
}

// preview rasterizes the master template next to it. Failures are logged and
// leave no preview.
func (g *Generator) preview(ctx context.Context, master []byte) string {
	if !render.Available() {
		g.Logger.Debug("rsvg-convert not found, skipping template preview")
		return ""
	}
	png, err := render.ToPNG(ctx, master, previewScale)
	if err != nil {
		g.Logger.Warn("template preview failed", "err", err)
		return ""
	}
	path := filepath.Join(g.OutputDir, PreviewFile)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		g.Logger.Warn("template preview failed", "err", err)
		return ""
	}
	return path
}

// Labels returns the template labels of records in order.
func Labels(records []candidate.Record) []layout.Label {
	labels := make([]layout.Label, len(records))
	for i, r := range records {
		labels[i] = layout.Label{Name: r.BallotName, Info: r.Info()}
	}
	return labels
}
