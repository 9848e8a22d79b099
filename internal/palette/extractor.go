// Package palette extracts the most prominent colours from an image.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/jmylchreest/colourtype/internal/colour"
)

// ErrNoPixels is returned when an image has no opaque pixels to sample.
var ErrNoPixels = errors.New("no opaque pixels found in image")

// MaxCount is the largest number of colours an extractor will return.
const MaxCount = 256

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract returns up to count colours from img, most prominent first.
	// Only every precision-th pixel on each axis is sampled.
	Extract(img image.Image, count, precision int) ([]colour.RGB, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmDominant returns the most frequent colours.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmDominant, AlgorithmKMeans}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// Config holds configuration for colour extraction.
type Config struct {
	Algorithm Algorithm
	Count     int
	Precision int
}

// DefaultConfig returns the default extraction configuration: the five most
// frequent colours, sampling every fifth pixel.
func DefaultConfig() Config {
	return Config{
		Algorithm: AlgorithmDominant,
		Count:     5,
		Precision: 5,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if _, err := NewExtractor(c.Algorithm); err != nil {
		return err
	}
	if c.Count < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.Count)
	}
	if c.Count > MaxCount {
		return fmt.Errorf("colour count too large: %d (maximum: %d)", c.Count, MaxCount)
	}
	if c.Precision < 1 {
		return fmt.Errorf("precision must be at least 1, got %d", c.Precision)
	}
	return nil
}

func validateArgs(img image.Image, count, precision int) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	return Config{Algorithm: AlgorithmDominant, Count: count, Precision: precision}.Validate()
}

// samplePixels returns the opaque pixels found on a grid of the given step.
// Partially transparent pixels are un-premultiplied.
func samplePixels(img image.Image, step int) []colour.RGB {
	bounds := img.Bounds()
	pixels := make([]colour.RGB, 0, (bounds.Dx()/step+1)*(bounds.Dy()/step+1))

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			pixels = append(pixels, colour.RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return pixels
}
