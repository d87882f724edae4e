package predict

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Report summarizes a training run.
type Report struct {
	Train int
	Test  int
	// R2 is the held-out coefficient of determination per target.
	R2 map[string]float64
}

type fitConfig struct {
	ridge        float64
	testFraction float64
	version      string
}

// FitOption configures Fit.
type FitOption func(*fitConfig)

// WithRidge sets the L2 penalty added to the normal equations.
//
// Parameters:
//   - lambda: the penalty, >= 0
//
// Returns:
//   - FitOption: option function to apply
func WithRidge(lambda float64) FitOption {
	return func(c *fitConfig) {
		if lambda >= 0 {
			c.ridge = lambda
		}
	}
}

// WithTestFraction sets the share of rows held out for scoring.
//
// Parameters:
//   - f: fraction in (0, 1)
//
// Returns:
//   - FitOption: option function to apply
func WithTestFraction(f float64) FitOption {
	return func(c *fitConfig) {
		if f > 0 && f < 1 {
			c.testFraction = f
		}
	}
}

// WithVersion labels the resulting model. Defaults to the training time.
//
// Parameters:
//   - version: the label
//
// Returns:
//   - FitOption: option function to apply
func WithVersion(version string) FitOption {
	return func(c *fitConfig) {
		c.version = version
	}
}

// Fit trains a Model from a labelled table. Rows are shuffled with seed, split 80/20, the scaler
// is fitted on the training rows and each target gets a ridge-stabilized least squares fit.
//
// Parameters:
//   - t: a table with every input column and every target column
//   - seed: the shuffle seed
//   - options: training options
//
// Returns:
//   - *Model: the fitted model
//   - Report: split sizes and held-out scores
//   - error: ErrMissingColumns, ErrInvalidValue or a too-small dataset
func Fit(t *Table, seed uint64, options ...FitOption) (*Model, Report, error) {
	cfg := fitConfig{ridge: 1e-3, testFraction: 0.2}
	for _, option := range options {
		option(&cfg)
	}

	if err := t.require(append(append([]string{}, InputColumns...), Targets...)); err != nil {
		return nil, Report{}, err
	}
	ys := make([][]float64, len(Targets))
	for k, target := range Targets {
		y, err := t.Float(target)
		if err != nil {
			return nil, Report{}, err
		}
		ys[k] = y
	}
	x, err := Engineer(t)
	if err != nil {
		return nil, Report{}, err
	}

	n := len(x)
	nTest := int(math.Ceil(cfg.testFraction * float64(n)))
	if n-nTest < 1 || nTest < 1 {
		return nil, Report{}, fmt.Errorf("fit: %d rows is too few to split: %w", n, ErrEmptyTable)
	}

	perm := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Perm(n)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	trainX := pick(x, trainIdx)
	scaler := FitScaler(trainX)
	trainXs, _ := scaler.Transform(trainX)
	testXs, _ := scaler.Transform(pick(x, testIdx))
	gram := gramMatrix(trainXs, cfg.ridge)

	now := time.Now().UTC().Truncate(time.Second)
	m := &Model{
		Version:  cfg.version,
		Trained:  now,
		Features: append([]string{}, FeatureColumns...),
		Scaler:   scaler,
	}
	if m.Version == "" {
		m.Version = now.Format("20060102T150405Z")
	}
	report := Report{Train: len(trainIdx), Test: len(testIdx), R2: make(map[string]float64, len(Targets))}

	for k, target := range Targets {
		trainY := pickValues(ys[k], trainIdx)
		r, err := fitRegressor(gram, trainXs, trainY)
		if err != nil {
			return nil, Report{}, fmt.Errorf("fit %s: %w", target, err)
		}
		r.Target = target
		r.R2 = rSquared(r, testXs, pickValues(ys[k], testIdx))
		report.R2[target] = r.R2
		m.Regressors = append(m.Regressors, r)
	}
	return m, report, nil
}

func pick(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = x[j]
	}
	return out
}

func pickValues(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

// gramMatrix returns XᵀX + λI.
func gramMatrix(x [][]float64, lambda float64) [][]float64 {
	p := len(FeatureColumns)
	g := make([][]float64, p)
	for i := range g {
		g[i] = make([]float64, p)
		g[i][i] = lambda
	}
	for _, row := range x {
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				g[i][j] += row[i] * row[j]
			}
		}
	}
	for i := 0; i < p; i++ {
		for j := 0; j < i; j++ {
			g[i][j] = g[j][i]
		}
	}
	return g
}

// fitRegressor solves for coefficients on standardized features. The features have zero mean
// over the training rows, so the intercept is the mean target.
func fitRegressor(gram, x [][]float64, y []float64) (Regressor, error) {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	p := len(gram)
	rhs := make([]float64, p)
	for i, row := range x {
		d := y[i] - mean
		for j := 0; j < p; j++ {
			rhs[j] += row[j] * d
		}
	}
	coef, err := solve(gram, rhs)
	if err != nil {
		return Regressor{}, err
	}
	return Regressor{Intercept: mean, Coef: coef}, nil
}

var errSingular = errors.New("singular system")

// solve runs Gaussian elimination with partial pivoting on a copy of a.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, errSingular
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	out := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		s := m[r][n]
		for c := r + 1; c < n; c++ {
			s -= m[r][c] * out[c]
		}
		out[r] = s / m[r][r]
	}
	return out, nil
}

func rSquared(r Regressor, x [][]float64, y []float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssRes, ssTot float64
	for i, row := range x {
		d := y[i] - r.Predict(row)
		ssRes += d * d
		t := y[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
