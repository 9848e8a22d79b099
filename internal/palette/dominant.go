package palette

import (
	"image"
	"slices"

	"github.com/jmylchreest/colourtype/internal/colour"
)

// DominantExtractor returns the most frequent colours in an image. Pixels
// are grouped into buckets by the top bits of each channel so that near
// identical shades count together; each bucket reports its mean colour.
type DominantExtractor struct {
	bits uint
}

// NewDominantExtractor creates a DominantExtractor that groups pixels by the
// top four bits of each channel.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{bits: 4}
}

type bucket struct {
	key     uint32
	count   int
	r, g, b int
}

// Extract returns up to count colours ordered by how many sampled pixels
// fall into each bucket. Equal counts are ordered by bucket position.
func (e *DominantExtractor) Extract(img image.Image, count, precision int) ([]colour.RGB, error) {
	if err := validateArgs(img, count, precision); err != nil {
		return nil, err
	}

	pixels := samplePixels(img, precision)
	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}

	shift := 8 - e.bits
	index := make(map[uint32]int)
	var buckets []bucket
	for _, p := range pixels {
		key := uint32(p.R>>shift)<<(2*e.bits) | uint32(p.G>>shift)<<e.bits | uint32(p.B>>shift)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{key: key})
		}
		b := &buckets[i]
		b.count++
		b.r += int(p.R)
		b.g += int(p.G)
		b.b += int(p.B)
	}

	slices.SortFunc(buckets, func(a, b bucket) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(a.key) - int(b.key)
	})

	n := min(count, len(buckets))
	result := make([]colour.RGB, n)
	for i, b := range buckets[:n] {
		result[i] = colour.RGB{
			R: uint8(b.r / b.count),
			G: uint8(b.g / b.count),
			B: uint8(b.b / b.count),
		}
	}
	return result, nil
}
