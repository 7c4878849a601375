// Package spectra synthesizes illustrative absorbance curves from
// parametric generators (Gaussian peaks, logistic drop-offs).
package spectra

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Gaussian evaluates a peak of the given amplitude centered on center
// with the given width (standard deviation).
func Gaussian(x, center, width, amplitude float64) float64 {
	d := (x - center) / width
	return amplitude * math.Exp(-0.5*d*d)
}

// LogisticStep evaluates a sigmoid rising from 0 to amplitude around
// midpoint; steepness is the transition scale.
func LogisticStep(x, midpoint, steepness, amplitude float64) float64 {
	return amplitude / (1 + math.Exp(-(x-midpoint)/steepness))
}

// Grid returns n evenly spaced x values spanning [lo, hi] inclusive
func Grid(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// Sample evaluates f over the grid, producing one y per x. Same grid and
// f always produce the same output.
func Sample(xs []float64, f func(x float64) float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys
}

// Term is one signed component of a composite curve
type Term struct {
	Eval func(x float64) float64
	Sign float64 // +1 adds the component, -1 subtracts it
}

// Peak builds an additive Gaussian term
func Peak(center, width, amplitude float64) Term {
	return Term{Eval: func(x float64) float64 { return Gaussian(x, center, width, amplitude) }, Sign: 1}
}

// Valley builds a subtractive Gaussian term
func Valley(center, width, amplitude float64) Term {
	return Term{Eval: func(x float64) float64 { return Gaussian(x, center, width, amplitude) }, Sign: -1}
}

// DropOff builds a subtractive logistic term
func DropOff(midpoint, steepness, amplitude float64) Term {
	return Term{Eval: func(x float64) float64 { return LogisticStep(x, midpoint, steepness, amplitude) }, Sign: -1}
}

// Compose sums the signed terms at x and floors the result at zero.
// Physical absorbance cannot be negative, so the clamp is part of the
// model, not cosmetics.
func Compose(terms ...Term) func(x float64) float64 {
	return func(x float64) float64 {
		var y float64
		for _, t := range terms {
			y += t.Sign * t.Eval(x)
		}
		if y < 0 {
			return 0
		}
		return y
	}
}
