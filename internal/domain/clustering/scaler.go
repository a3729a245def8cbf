package clustering

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler standardizes features to zero mean and unit variance.
// Missing cells (NaN) are imputed with the column mean before fitting, so the
// row count stays stable for downstream consumers. Once fitted the scaler is
// immutable and safe for concurrent Transform calls.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// Fitted reports whether Fit has completed.
func (s *StandardScaler) Fitted() bool {
	return s != nil && s.mean != nil
}

// FitTransform imputes missing values, fits the scaler, and returns the
// standardized copy of X. X itself is not modified.
func (s *StandardScaler) FitTransform(X *mat.Dense) (*mat.Dense, error) {
	imputed, err := imputeColumnMeans(X)
	if err != nil {
		return nil, err
	}

	rows, cols := imputed.Dims()
	s.mean = make([]float64, cols)
	s.scale = make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += imputed.At(i, j)
		}
		mean := sum / float64(rows)

		var sqSum float64
		for i := 0; i < rows; i++ {
			d := imputed.At(i, j) - mean
			sqSum += d * d
		}
		std := math.Sqrt(sqSum / float64(rows))

		s.mean[j] = mean
		// A constant feature carries no information; scaling by 1 keeps the
		// output finite instead of dividing by zero.
		if std == 0 {
			std = 1
		}
		s.scale[j] = std
	}

	return s.Transform(imputed)
}

// Transform applies the stored mean/std column-wise. Pure function of the
// fitted parameters: identical input always yields identical output.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(s.mean) {
		return nil, ErrDimensionMismatch
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (X.At(i, j)-s.mean[j])/s.scale[j])
		}
	}
	return out, nil
}

// TransformVector standardizes a single feature vector.
func (s *StandardScaler) TransformVector(v []float64) ([]float64, error) {
	if !s.Fitted() {
		return nil, ErrNotFitted
	}
	if len(v) != len(s.mean) {
		return nil, ErrDimensionMismatch
	}
	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.mean[j]) / s.scale[j]
	}
	return out, nil
}

// imputeColumnMeans returns a copy of X with NaN cells replaced by their
// column's mean over the observed values. A column with no observed values
// is imputed with zero.
func imputeColumnMeans(X *mat.Dense) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyMatrix
	}

	out := mat.DenseCopyOf(X)
	for j := 0; j < cols; j++ {
		var sum float64
		var n int
		for i := 0; i < rows; i++ {
			v := out.At(i, j)
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		mean := 0.0
		if n > 0 {
			mean = sum / float64(n)
		}
		for i := 0; i < rows; i++ {
			if math.IsNaN(out.At(i, j)) {
				out.Set(i, j, mean)
			}
		}
	}
	return out, nil
}
