package ports

import "photodeck/adapters/stats/fit"

// MeasurementSourcePort supplies the raw sample series behind the deck's
// charts. Implementations: the embedded demo dataset and the Excel/CSV
// reader. A source that fails should be swapped for the embedded
// fallback by the caller, not patched around here.
type MeasurementSourcePort interface {
	// KineticsSeries returns (time s, concentration ratio C/C0) pairs
	KineticsSeries() ([]fit.Point, error)
	// CalibrationSeries returns (concentration µM, absorbance) pairs
	CalibrationSeries() ([]fit.Point, error)
}
