package predict

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Regressor is a linear model for one target over standardized features.
type Regressor struct {
	Target    string    `toml:"target"`
	Intercept float64   `toml:"intercept"`
	Coef      []float64 `toml:"coef"`
	// R2 is the coefficient of determination on the held-out split, informational only.
	R2 float64 `toml:"r2"`
}

// Predict evaluates the regressor for one standardized row.
func (r Regressor) Predict(row []float64) float64 {
	y := r.Intercept
	for j, c := range r.Coef {
		y += c * row[j]
	}
	return y
}

// Model is a fitted scaler and one regressor per target.
type Model struct {
	Version    string      `toml:"version"`
	Trained    time.Time   `toml:"trained"`
	Features   []string    `toml:"features"`
	Scaler     Scaler      `toml:"scaler"`
	Regressors []Regressor `toml:"regressor"`
}

// Validate checks that the model matches the current feature layout and covers every target.
//
// Returns:
//   - error: a description of the first inconsistency
func (m *Model) Validate() error {
	if !slices.Equal(m.Features, FeatureColumns) {
		return fmt.Errorf("model features %v do not match %v", m.Features, FeatureColumns)
	}
	if len(m.Scaler.Mean) != len(FeatureColumns) || len(m.Scaler.Scale) != len(FeatureColumns) {
		return fmt.Errorf("model scaler has %d/%d entries, want %d", len(m.Scaler.Mean), len(m.Scaler.Scale), len(FeatureColumns))
	}
	for _, target := range Targets {
		r, ok := m.regressor(target)
		if !ok {
			return fmt.Errorf("model has no regressor for %q", target)
		}
		if len(r.Coef) != len(FeatureColumns) {
			return fmt.Errorf("regressor %q has %d coefficients, want %d", target, len(r.Coef), len(FeatureColumns))
		}
	}
	return nil
}

func (m *Model) regressor(target string) (Regressor, bool) {
	for _, r := range m.Regressors {
		if r.Target == target {
			return r, true
		}
	}
	return Regressor{}, false
}

// Predict engineers features for t, appends one column per target and returns t.
//
// Parameters:
//   - t: a table carrying every input column; modified in place
//
// Returns:
//   - *Table: the augmented table
//   - error: ErrMissingColumns, ErrInvalidValue or a model shape error
func (m *Model) Predict(t *Table) (*Table, error) {
	x, err := Engineer(t)
	if err != nil {
		return nil, err
	}
	xs, err := m.Scaler.Transform(x)
	if err != nil {
		return nil, err
	}
	for _, target := range Targets {
		r, ok := m.regressor(target)
		if !ok {
			return nil, fmt.Errorf("model has no regressor for %q", target)
		}
		values := make([]float64, len(xs))
		for i, row := range xs {
			values[i] = r.Predict(row)
		}
		t.SetColumn(target, values)
	}
	return t, nil
}

// ReadModel decodes and validates a TOML model.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - *Model: the model
//   - error: a decode or validation error
func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadModel reads a TOML model file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *Model: the model
//   - error: a read, decode or validation error
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	m, err := ReadModel(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// Save writes the model as TOML. The file is written beside path and renamed into place so a
// watching Registry never reads a partial file.
//
// Parameters:
//   - path: the destination
//
// Returns:
//   - error: an encode or write error
func (m *Model) Save(path string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.toml")
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}
