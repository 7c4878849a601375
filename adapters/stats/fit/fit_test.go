package fit

import (
	"math"
	"testing"
)

func TestLinear_ExactLine(t *testing.T) {
	// y = 2x + 1, no noise.
	points := []Point{{0, 1}, {1, 3}, {2, 5}, {3, 7}}
	res, err := Linear(points)
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if math.Abs(res.Slope-2) > 1e-12 {
		t.Errorf("Expected slope 2, got %g", res.Slope)
	}
	if math.Abs(res.Intercept-1) > 1e-12 {
		t.Errorf("Expected intercept 1, got %g", res.Intercept)
	}
	if math.Abs(res.RSquared-1) > 1e-12 {
		t.Errorf("Expected R²=1 for an exact line, got %g", res.RSquared)
	}
}

func TestLinear_NoisyDataRSquaredRange(t *testing.T) {
	// Roughly linear with fixed perturbations; R² must land in [0,1].
	points := []Point{
		{0, 0.1}, {1, 1.9}, {2, 4.2}, {3, 5.8}, {4, 8.3},
		{5, 9.7}, {6, 12.4}, {7, 13.6}, {8, 16.2}, {9, 17.8},
	}
	res, err := Linear(points)
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if res.RSquared < 0 || res.RSquared > 1 {
		t.Errorf("R² must be in [0,1], got %g", res.RSquared)
	}
	if res.Slope <= 0 {
		t.Errorf("Expected positive slope, got %g", res.Slope)
	}
}

func TestLinear_Deterministic(t *testing.T) {
	points := []Point{{0, 0.5}, {1, 2.1}, {2, 3.4}, {3, 6.2}}
	a, err1 := Linear(points)
	b, err2 := Linear(points)
	if err1 != nil || err2 != nil {
		t.Fatalf("Linear failed: %v %v", err1, err2)
	}
	if a != b {
		t.Errorf("Refitting the same input must be identical: %+v vs %+v", a, b)
	}
}

func TestLinear_FlatLineConvention(t *testing.T) {
	// All y identical: total variance is zero, R² is 1 by convention.
	res, err := Linear([]Point{{0, 1}, {1, 1}, {2, 1}})
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if res.Slope != 0 {
		t.Errorf("Expected slope 0 for a flat line, got %g", res.Slope)
	}
	if math.Abs(res.Intercept-1) > 1e-12 {
		t.Errorf("Expected intercept 1, got %g", res.Intercept)
	}
	if res.RSquared != 1 {
		t.Errorf("Expected R²=1 by the flat-line convention, got %g", res.RSquared)
	}
}

func TestLinear_InsufficientData(t *testing.T) {
	if _, err := Linear([]Point{{1, 2}}); err != ErrInsufficientData {
		t.Fatalf("Expected ErrInsufficientData for one point, got %v", err)
	}
	if _, err := Linear(nil); err != ErrInsufficientData {
		t.Fatalf("Expected ErrInsufficientData for nil input, got %v", err)
	}
}

func TestLinear_ZeroXVariance(t *testing.T) {
	res, err := Linear([]Point{{0, 0}, {0, 1}})
	if err != ErrZeroXVariance {
		t.Fatalf("Expected ErrZeroXVariance, got %v (result %+v)", err, res)
	}
	if math.IsNaN(res.Slope) {
		t.Error("Degenerate input must report an error, not a NaN slope")
	}
}

func TestResult_At(t *testing.T) {
	r := Result{Slope: 2, Intercept: 1}
	if got := r.At(3); got != 7 {
		t.Errorf("At(3) on y=2x+1 should be 7, got %g", got)
	}
}
