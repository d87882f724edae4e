package predict

import (
	"fmt"
	"math"
)

// Scaler standardizes features to zero mean and unit variance.
type Scaler struct {
	Mean  []float64 `toml:"mean"`
	Scale []float64 `toml:"scale"`
}

// FitScaler computes per-column mean and population standard deviation.
// Constant columns get a scale of 1 so they transform to 0 instead of dividing by zero.
//
// Parameters:
//   - x: rows of features
//
// Returns:
//   - Scaler: the fitted scaler
func FitScaler(x [][]float64) Scaler {
	if len(x) == 0 {
		return Scaler{}
	}
	cols := len(x[0])
	s := Scaler{Mean: make([]float64, cols), Scale: make([]float64, cols)}
	n := float64(len(x))
	for _, row := range x {
		for j, v := range row {
			s.Mean[j] += v / n
		}
	}
	for _, row := range x {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Scale[j] += d * d / n
		}
	}
	for j := range s.Scale {
		s.Scale[j] = math.Sqrt(s.Scale[j])
		if s.Scale[j] < 1e-12 {
			s.Scale[j] = 1
		}
	}
	return s
}

// Transform returns standardized copies of the rows.
//
// Parameters:
//   - x: rows of features
//
// Returns:
//   - [][]float64: the standardized rows
//   - error: an error when a row width does not match the scaler
func (s Scaler) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler expects %d features, row %d has %d", len(s.Mean), i, len(row))
		}
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = (v - s.Mean[j]) / s.Scale[j]
		}
	}
	return out, nil
}
