package clustering

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// threeBlobs builds well-separated groups so any sane fit recovers them.
func threeBlobs() *mat.Dense {
	return mat.NewDense(9, 2, []float64{
		0.0, 0.1,
		0.1, 0.0,
		-0.1, -0.1,
		10.0, 10.1,
		10.1, 9.9,
		9.9, 10.0,
		-10.0, 10.0,
		-10.1, 10.1,
		-9.9, 9.9,
	})
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	X := threeBlobs()

	m := NewKMeans(3, 42)
	if err := m.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Rows of the same blob must land in the same cluster, rows of
	// different blobs in different ones.
	labels := make([]int, 9)
	for i := 0; i < 9; i++ {
		c, err := m.Predict(X.RawRowView(i))
		if err != nil {
			t.Fatalf("Predict row %d: %v", i, err)
		}
		labels[i] = c
	}
	for blob := 0; blob < 3; blob++ {
		base := labels[blob*3]
		for i := 1; i < 3; i++ {
			if labels[blob*3+i] != base {
				t.Errorf("blob %d split across clusters: %v", blob, labels)
			}
		}
	}
	if labels[0] == labels[3] || labels[0] == labels[6] || labels[3] == labels[6] {
		t.Errorf("blobs merged: %v", labels)
	}
}

func TestKMeansDeterministicForFixedSeed(t *testing.T) {
	X := threeBlobs()

	a := NewKMeans(3, 42)
	if err := a.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b := NewKMeans(3, 42)
	if err := b.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if a.Inertia() != b.Inertia() {
		t.Fatalf("inertia differs across identical fits: %v vs %v", a.Inertia(), b.Inertia())
	}
	if !mat.Equal(a.Centroids(), b.Centroids()) {
		t.Fatal("centroids differ across identical fits")
	}
}

func TestKMeansPredictTieTakesLowestIndex(t *testing.T) {
	// Two one-dimensional points; a query exactly between them is a tie.
	X := mat.NewDense(2, 1, []float64{-1, 1})
	m := NewKMeans(2, 1)
	if err := m.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	c, err := m.Predict([]float64{0})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if c != 0 {
		t.Fatalf("tie resolved to %d, want 0", c)
	}
}

func TestKMeansErrors(t *testing.T) {
	m := NewKMeans(3, 42)

	if _, err := m.Predict([]float64{0, 0}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("Predict before fit err = %v, want ErrNotFitted", err)
	}

	if err := m.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); !errors.Is(err, ErrInsufficientSamples) {
		t.Errorf("Fit with rows < k err = %v, want ErrInsufficientSamples", err)
	}

	if err := m.Fit(threeBlobs()); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if _, err := m.Predict([]float64{0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Predict with wrong width err = %v, want ErrDimensionMismatch", err)
	}
}

func TestKMeansDuplicatePoints(t *testing.T) {
	// More clusters than distinct points still has to terminate.
	X := mat.NewDense(4, 1, []float64{5, 5, 5, 5})
	m := NewKMeans(2, 7)
	if err := m.Fit(X); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if m.Inertia() != 0 {
		t.Errorf("inertia = %v, want 0 for identical points", m.Inertia())
	}
}
