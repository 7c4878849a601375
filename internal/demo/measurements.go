package demo

import "photodeck/adapters/stats/fit"

// MeasurementSource serves the embedded experiment data. It stands in
// for an Excel export when MEASUREMENTS_FILE is not configured.
type MeasurementSource struct{}

// NewMeasurementSource returns the embedded source
func NewMeasurementSource() *MeasurementSource {
	return &MeasurementSource{}
}

// KineticsSeries returns C/C0 against irradiation time in seconds for
// the catalyst-B run shown on the kinetics slide.
func (s *MeasurementSource) KineticsSeries() ([]fit.Point, error) {
	return []fit.Point{
		{X: 0, Y: 1.000},
		{X: 600, Y: 0.812},
		{X: 1200, Y: 0.655},
		{X: 1800, Y: 0.528},
		{X: 2400, Y: 0.430},
		{X: 3000, Y: 0.349},
		{X: 3600, Y: 0.281},
		{X: 4200, Y: 0.228},
		{X: 4800, Y: 0.184},
		{X: 5400, Y: 0.149},
	}, nil
}

// CalibrationSeries returns absorbance at 664 nm against prepared
// methylene-blue standards in µM.
func (s *MeasurementSource) CalibrationSeries() ([]fit.Point, error) {
	return []fit.Point{
		{X: 0, Y: 0.004},
		{X: 2, Y: 0.151},
		{X: 4, Y: 0.298},
		{X: 6, Y: 0.442},
		{X: 8, Y: 0.601},
		{X: 10, Y: 0.748},
		{X: 12, Y: 0.896},
	}, nil
}
