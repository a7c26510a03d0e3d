// Package kmeans implements k-means clustering with k-means++ seeding
// and best-of-N restarts. Results are deterministic for a given seed.
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMaxIterations bounds the Lloyd loop of a single run.
	DefaultMaxIterations = 300

	// DefaultTolerance is the centroid displacement below which a run
	// is considered converged.
	DefaultTolerance = 1e-4

	// DefaultRuns is the number of restarts; the run with the lowest
	// inertia wins.
	DefaultRuns = 10
)

var (
	ErrNoSamples  = errors.New("kmeans: matrix has no samples")
	ErrNoFeatures = errors.New("kmeans: matrix has no features")
)

// Config controls a clustering fit. Zero values take defaults; K is
// clamped to [1, number of samples]. A zero Seed is replaced with a
// time-derived one, and the effective seed is reported on the Result.
type Config struct {
	K             int
	MaxIterations int
	Tolerance     float64
	Seed          int64
	Runs          int
}

// Result is the outcome of a fit.
type Result struct {
	K          int         `json:"k"`
	Centroids  [][]float64 `json:"centroids"`
	Labels     []int       `json:"labels"`
	Inertia    float64     `json:"inertia"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
	Seed       int64       `json:"seed"`
}

// Fit clusters the rows of X into cfg.K groups.
func Fit(X *mat.Dense, cfg Config) (*Result, error) {
	n, d := X.Dims()
	if n == 0 {
		return nil, ErrNoSamples
	}
	if d == 0 {
		return nil, ErrNoFeatures
	}
	if err := checkFinite(X); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults(n)

	var best *Result
	for run := 0; run < cfg.Runs; run++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(run)))
		res := lloyd(X, cfg, rng)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	best.Seed = cfg.Seed
	return best, nil
}

func (c Config) withDefaults(n int) Config {
	if c.K < 1 {
		c.K = 1
	}
	if c.K > n {
		c.K = n
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Runs <= 0 {
		c.Runs = DefaultRuns
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

func checkFinite(X *mat.Dense) error {
	n, d := X.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("kmeans: non-finite value at row %d, column %d", i, j)
			}
		}
	}
	return nil
}

// lloyd runs a single seeded k-means fit.
func lloyd(X *mat.Dense, cfg Config, rng *rand.Rand) *Result {
	n, d := X.Dims()
	centroids := seedPlusPlus(X, cfg.K, rng)
	labels := make([]int, n)
	prev := make([][]float64, cfg.K)
	for i := range prev {
		prev[i] = make([]float64, d)
	}

	iterations := 0
	converged := false
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1

		for i := 0; i < n; i++ {
			labels[i], _ = nearest(X.RawRowView(i), centroids)
		}

		for i := range centroids {
			copy(prev[i], centroids[i])
		}
		updateCentroids(X, labels, centroids)
		reseedEmpty(X, labels, centroids)

		shift := 0.0
		for i := range centroids {
			if s := math.Sqrt(dist2(centroids[i], prev[i])); s > shift {
				shift = s
			}
		}
		if shift < cfg.Tolerance {
			converged = true
			break
		}
	}

	// Final assignment against the settled centroids.
	inertia := 0.0
	for i := 0; i < n; i++ {
		var d2 float64
		labels[i], d2 = nearest(X.RawRowView(i), centroids)
		inertia += d2
	}

	return &Result{
		K:          cfg.K,
		Centroids:  centroids,
		Labels:     labels,
		Inertia:    inertia,
		Iterations: iterations,
		Converged:  converged,
	}
}

// seedPlusPlus picks initial centroids by D² sampling.
func seedPlusPlus(X *mat.Dense, k int, rng *rand.Rand) [][]float64 {
	n, d := X.Dims()
	centroids := make([][]float64, 0, k)

	first := make([]float64, d)
	copy(first, X.RawRowView(rng.Intn(n)))
	centroids = append(centroids, first)

	d2 := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i := 0; i < n; i++ {
			_, d2[i] = nearest(X.RawRowView(i), centroids)
			total += d2[i]
		}

		var idx int
		if total == 0 {
			// All points coincide with a centroid; any choice works.
			idx = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			sum := 0.0
			idx = n - 1
			for i := 0; i < n; i++ {
				sum += d2[i]
				if sum >= target {
					idx = i
					break
				}
			}
		}

		next := make([]float64, d)
		copy(next, X.RawRowView(idx))
		centroids = append(centroids, next)
	}
	return centroids
}

func updateCentroids(X *mat.Dense, labels []int, centroids [][]float64) {
	n, d := X.Dims()
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, d)
	}

	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		c := labels[i]
		counts[c]++
		for j := 0; j < d; j++ {
			sums[c][j] += row[j]
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		for j := 0; j < d; j++ {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

// reseedEmpty moves each empty centroid onto the point currently
// farthest from its assigned centroid, so every cluster stays populated.
func reseedEmpty(X *mat.Dense, labels []int, centroids [][]float64) {
	counts := make([]int, len(centroids))
	for _, l := range labels {
		counts[l]++
	}

	n, _ := X.Dims()
	for c := range centroids {
		if counts[c] > 0 {
			continue
		}
		farthest, maxD2 := 0, -1.0
		for i := 0; i < n; i++ {
			if counts[labels[i]] <= 1 {
				continue
			}
			d2 := dist2(X.RawRowView(i), centroids[labels[i]])
			if d2 > maxD2 {
				farthest, maxD2 = i, d2
			}
		}
		counts[labels[farthest]]--
		copy(centroids[c], X.RawRowView(farthest))
		labels[farthest] = c
		counts[c] = 1
	}
}

func nearest(point []float64, centroids [][]float64) (int, float64) {
	idx, min := 0, math.MaxFloat64
	for c, centroid := range centroids {
		if d2 := dist2(point, centroid); d2 < min {
			idx, min = c, d2
		}
	}
	return idx, min
}

func dist2(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
