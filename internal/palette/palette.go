package palette

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourtype/internal/colour"
	imageloader "github.com/jmylchreest/colourtype/internal/image"
)

// Palette is an ordered collection of colours, most prominent first.
type Palette struct {
	colors []colour.Color
}

// New creates a Palette holding the given colours.
func New(colors []colour.Color) *Palette {
	return &Palette{colors: append([]colour.Color(nil), colors...)}
}

// FromRGB adapts extracted channel triples into a Palette.
func FromRGB(triples []colour.RGB) *Palette {
	colors := make([]colour.Color, len(triples))
	for i, t := range triples {
		colors[i] = colour.FromRGB(int(t.R), int(t.G), int(t.B))
	}
	return &Palette{colors: colors}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the palette's colours.
func (p *Palette) Colors() []colour.Color {
	return append([]colour.Color(nil), p.colors...)
}

// HTML returns every colour as an HTML hex string (e.g. "#1a2b3c").
func (p *Palette) HTML() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.HTML()
	}
	return out
}

// RGB returns every colour as channel triples.
func (p *Palette) RGB() []colour.RGB {
	out := make([]colour.RGB, len(p.colors))
	for i, c := range p.colors {
		out[i] = c.RGB()
	}
	return out
}

// Entry is a single palette colour in all its representations.
type Entry struct {
	Hex     string     `json:"hex" yaml:"hex"`
	Decimal int        `json:"decimal" yaml:"decimal"`
	RGB     colour.RGB `json:"rgb" yaml:"rgb"`
	HSL     colour.HSL `json:"hsl" yaml:"hsl"`
}

// Document is the serialisable form of a Palette.
type Document struct {
	Count  int     `json:"count" yaml:"count"`
	Colors []Entry `json:"colors" yaml:"colors"`
}

// Document returns the palette in its serialisable form.
func (p *Palette) Document() Document {
	entries := make([]Entry, len(p.colors))
	for i, c := range p.colors {
		entries[i] = Entry{Hex: c.HTML(), Decimal: c.Decimal(), RGB: c.RGB(), HSL: c.HSL()}
	}
	return Document{Count: len(p.colors), Colors: entries}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.Document(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.colors) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.colors))
	for i, c := range p.colors {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.HTML(), c.RGB())
	}
	return result
}

// FromImage extracts a palette from an already decoded image.
func FromImage(img image.Image, cfg Config, logger hclog.Logger) (*Palette, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	extractor, err := NewExtractor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	logger.Debug("extracting palette", "algorithm", cfg.Algorithm, "count", cfg.Count,
		"precision", cfg.Precision, "width", b.Dx(), "height", b.Dy())

	triples, err := extractor.Extract(img, cfg.Count, cfg.Precision)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}

	logger.Debug("palette extracted", "colours", len(triples))
	return FromRGB(triples), nil
}

// FromBytes decodes an in-memory image and extracts a palette from it.
func FromBytes(ctx context.Context, data []byte, cfg Config, logger hclog.Logger) (*Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imageloader.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return FromImage(img, cfg, logger)
}

// FromFile loads the image at path and extracts a palette from it.
func FromFile(ctx context.Context, path string, cfg Config, logger hclog.Logger) (*Palette, error) {
	return FromLoader(ctx, imageloader.NewFileLoader(), path, cfg, logger)
}

// FromLoader loads the image at path through loader and extracts a palette
// from it.
func FromLoader(ctx context.Context, loader imageloader.Loader, path string, cfg Config, logger hclog.Logger) (*Palette, error) {
	if loader == nil {
		return nil, fmt.Errorf("image loader cannot be nil")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("loading image", "path", path)
	img, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return FromImage(img, cfg, logger.With("path", path))
}
