package kmeans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Silhouette returns the mean silhouette coefficient of a labelled
// fit, in [-1, 1]. It is undefined for fewer than two clusters or when
// every point is its own cluster.
func Silhouette(X *mat.Dense, labels []int) (float64, error) {
	n, _ := X.Dims()
	if n != len(labels) {
		return 0, fmt.Errorf("kmeans: %d labels for %d samples", len(labels), n)
	}

	k := 0
	for _, l := range labels {
		if l+1 > k {
			k = l + 1
		}
	}
	if k < 2 {
		return 0, fmt.Errorf("kmeans: silhouette requires at least 2 clusters, got %d", k)
	}
	if k >= n {
		return 0, fmt.Errorf("kmeans: silhouette requires more samples than clusters")
	}

	sizes := Sizes(labels, k)

	total := 0.0
	for i := 0; i < n; i++ {
		// Mean distance to every cluster, split into own vs others.
		sums := make([]float64, k)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Sqrt(dist2(X.RawRowView(i), X.RawRowView(j)))
		}

		own := labels[i]
		if sizes[own] <= 1 {
			// Singleton clusters contribute zero.
			continue
		}
		a := sums[own] / float64(sizes[own]-1)

		b := math.MaxFloat64
		for c := 0; c < k; c++ {
			if c == own || sizes[c] == 0 {
				continue
			}
			if m := sums[c] / float64(sizes[c]); m < b {
				b = m
			}
		}

		if max := math.Max(a, b); max > 0 {
			total += (b - a) / max
		}
	}

	return total / float64(n), nil
}

// Sizes counts the points assigned to each of k clusters.
func Sizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		if l >= 0 && l < k {
			sizes[l]++
		}
	}
	return sizes
}
