package clustering

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// KMeans partitions standardized feature rows into a fixed number of
// clusters. Initialization is k-means++ with a seeded generator and the whole
// fit is restarted a fixed number of times keeping the run with the lowest
// inertia, so results are exactly reproducible for a given dataset and seed.
// Cluster ids are stable 0..k-1 for one fitted instance only; a refit may
// permute them.
type KMeans struct {
	K        int
	Seed     int64
	MaxIters int
	Restarts int

	centroids *mat.Dense
	inertia   float64
}

// NewKMeans returns a model with the conventional iteration bounds.
func NewKMeans(k int, seed int64) *KMeans {
	return &KMeans{K: k, Seed: seed, MaxIters: 300, Restarts: 10}
}

// Fitted reports whether Fit has completed.
func (m *KMeans) Fitted() bool {
	return m != nil && m.centroids != nil
}

// Inertia returns the total within-cluster squared distance of the best run.
func (m *KMeans) Inertia() float64 {
	return m.inertia
}

// Centroids returns the fitted centroid matrix (k x d).
func (m *KMeans) Centroids() *mat.Dense {
	return m.centroids
}

// Fit runs the restarted Lloyd iteration over X (rows = samples, already
// standardized).
func (m *KMeans) Fit(X *mat.Dense) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyMatrix
	}
	if m.K <= 0 || rows < m.K {
		return ErrInsufficientSamples
	}

	maxIters := m.MaxIters
	if maxIters <= 0 {
		maxIters = 300
	}
	restarts := m.Restarts
	if restarts <= 0 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(m.Seed))

	bestInertia := math.Inf(1)
	var best *mat.Dense
	for run := 0; run < restarts; run++ {
		centroids := m.seedCentroids(X, rng)
		inertia := lloyd(X, centroids, maxIters)
		if inertia < bestInertia {
			bestInertia = inertia
			best = centroids
		}
	}

	m.centroids = best
	m.inertia = bestInertia
	return nil
}

// Predict returns the index of the nearest centroid by Euclidean distance,
// taking the lowest index on an exact tie. O(k*d) per call.
func (m *KMeans) Predict(v []float64) (int, error) {
	if !m.Fitted() {
		return 0, ErrNotFitted
	}
	k, d := m.centroids.Dims()
	if len(v) != d {
		return 0, ErrDimensionMismatch
	}

	best := 0
	bestDist := math.Inf(1)
	for c := 0; c < k; c++ {
		dist := sqDistance(v, m.centroids.RawRowView(c))
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best, nil
}

// seedCentroids picks initial centroids with k-means++: the first uniformly,
// each next with probability proportional to its squared distance from the
// nearest centroid chosen so far.
func (m *KMeans) seedCentroids(X *mat.Dense, rng *rand.Rand) *mat.Dense {
	rows, cols := X.Dims()
	centroids := mat.NewDense(m.K, cols, nil)

	first := rng.Intn(rows)
	centroids.SetRow(0, X.RawRowView(first))

	minDist := make([]float64, rows)
	for i := range minDist {
		minDist[i] = sqDistance(X.RawRowView(i), centroids.RawRowView(0))
	}

	for c := 1; c < m.K; c++ {
		var total float64
		for _, d := range minDist {
			total += d
		}

		next := 0
		if total > 0 {
			target := rng.Float64() * total
			var cum float64
			for i, d := range minDist {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		} else {
			// All remaining points coincide with a centroid already.
			next = rng.Intn(rows)
		}
		centroids.SetRow(c, X.RawRowView(next))

		for i := range minDist {
			d := sqDistance(X.RawRowView(i), centroids.RawRowView(c))
			if d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centroids
}

// lloyd iterates reassignment and centroid recomputation in place until the
// assignment stabilizes or maxIters is hit, returning the final inertia.
func lloyd(X *mat.Dense, centroids *mat.Dense, maxIters int) float64 {
	rows, cols := X.Dims()
	k, _ := centroids.Dims()

	assign := make([]int, rows)
	for i := range assign {
		assign[i] = -1
	}

	for iter := 0; iter < maxIters; iter++ {
		changed := false
		for i := 0; i < rows; i++ {
			best := 0
			bestDist := math.Inf(1)
			for c := 0; c < k; c++ {
				d := sqDistance(X.RawRowView(i), centroids.RawRowView(c))
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([]float64, k*cols)
		counts := make([]int, k)
		for i := 0; i < rows; i++ {
			c := assign[i]
			counts[c]++
			row := X.RawRowView(i)
			for j := 0; j < cols; j++ {
				sums[c*cols+j] += row[j]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Re-seed an emptied cluster with the point farthest from
				// its current centroid.
				far := farthestPoint(X, centroids, assign)
				centroids.SetRow(c, X.RawRowView(far))
				continue
			}
			for j := 0; j < cols; j++ {
				centroids.Set(c, j, sums[c*cols+j]/float64(counts[c]))
			}
		}
	}

	var inertia float64
	for i := 0; i < rows; i++ {
		inertia += sqDistance(X.RawRowView(i), centroids.RawRowView(assign[i]))
	}
	return inertia
}

func farthestPoint(X *mat.Dense, centroids *mat.Dense, assign []int) int {
	rows, _ := X.Dims()
	far := 0
	farDist := -1.0
	for i := 0; i < rows; i++ {
		d := sqDistance(X.RawRowView(i), centroids.RawRowView(assign[i]))
		if d > farDist {
			farDist = d
			far = i
		}
	}
	return far
}

func sqDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
