package palette

import (
	"image"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/jmylchreest/colourtype/internal/colour"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return NewKMeansExtractorWithSeed(time.Now().UnixNano())
}

// NewKMeansExtractorWithSeed creates a KMeansExtractor whose centroid
// initialisation is reproducible.
func NewKMeansExtractorWithSeed(seed int64) *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    5000,
		rng:           rand.New(rand.NewSource(seed)), // #nosec G404 - clustering does not need crypto randomness
	}
}

// Extract clusters the sampled pixels into count groups and returns the
// cluster centres, largest cluster first. Images with no more than count
// distinct colours return those colours in order of first appearance.
func (e *KMeansExtractor) Extract(img image.Image, count, precision int) ([]colour.RGB, error) {
	if err := validateArgs(img, count, precision); err != nil {
		return nil, err
	}

	pixels := samplePixels(img, precision)
	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}
	if len(pixels) > e.maxSamples {
		pixels = thin(pixels, e.maxSamples)
	}

	unique := make([]colour.RGB, 0, count+1)
	seen := make(map[colour.RGB]bool)
	for _, p := range pixels {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
			if len(unique) > count {
				break
			}
		}
	}
	if len(unique) <= count {
		return unique, nil
	}

	centroids, weights := e.kmeans(pixels, count)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case weights[a] > weights[b]:
			return -1
		case weights[a] < weights[b]:
			return 1
		default:
			return 0
		}
	})

	result := make([]colour.RGB, 0, len(centroids))
	for _, i := range order {
		if weights[i] == 0 {
			continue
		}
		c := centroids[i]
		result = append(result, colour.RGB{R: toChannel(c.R), G: toChannel(c.G), B: toChannel(c.B)})
	}
	return result, nil
}

// thin keeps an evenly spaced subset of at most n pixels.
func thin(pixels []colour.RGB, n int) []colour.RGB {
	step := float64(len(pixels)) / float64(n)
	out := make([]colour.RGB, n)
	for i := range out {
		out[i] = pixels[int(float64(i)*step)]
	}
	return out
}

func toChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(pixels []colour.RGB, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, p := range pixels {
		points[i] = point3D{R: float64(p.R), G: float64(p.G), B: float64(p.B)}
	}

	centroids := e.initialiseCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of points moved cluster.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recalculateCentroids(points, assignments, k)

		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next

		if movement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	for i, point := range points {
		assignments[i] = nearestCentroid(point, centroids)
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	total := float64(len(assignments))
	for i := range weights {
		weights[i] /= total
	}

	return centroids, weights
}

// initialiseCentroids picks starting centroids with k-means++, choosing each
// next centroid with probability proportional to its squared distance from
// the nearest one already chosen.
func (e *KMeansExtractor) initialiseCentroids(points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, point.distance(c))
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		if total == 0 {
			// Every point coincides with a centroid; nudge a duplicate.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points. Empty
// clusters are reseeded from a random point.
func (e *KMeansExtractor) recalculateCentroids(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			centroids[i] = points[e.rng.Intn(len(points))]
		}
	}
	return centroids
}
