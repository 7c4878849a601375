// Package fit provides the ordinary least-squares engine behind the
// kinetics and calibration charts.
package fit

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInsufficientData is returned for fewer than two points
	ErrInsufficientData = errors.New("insufficient data: linear fit needs at least 2 points")
	// ErrZeroXVariance is returned when all x are identical and the
	// slope denominator vanishes
	ErrZeroXVariance = errors.New("degenerate input: zero x-variance")
)

// Point is one (x, y) sample
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is a least-squares line with its coefficient of determination.
// RSquared is in [0,1] for any non-degenerate input. When every y is
// identical the total variance is zero and the natural formula divides
// by zero; we define RSquared = 1 for that case (the flat line passes
// through every point exactly).
type Result struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
}

// Linear fits y = slope·x + intercept by closed-form OLS. It is a pure
// function: refitting the same points returns the identical Result.
func Linear(points []Point) (Result, error) {
	if len(points) < 2 {
		return Result{}, ErrInsufficientData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	constX, constY := true, true
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		if p.X != points[0].X {
			constX = false
		}
		if p.Y != points[0].Y {
			constY = false
		}
	}
	if constX {
		return Result{}, ErrZeroXVariance
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	r2 := 1.0
	if !constY {
		r2 = stat.RSquared(xs, ys, nil, intercept, slope)
	}

	return Result{Slope: slope, Intercept: intercept, RSquared: r2}, nil
}

// At evaluates the fitted line
func (r Result) At(x float64) float64 {
	return r.Slope*x + r.Intercept
}
