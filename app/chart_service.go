package app

import (
	"context"
	"math"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"photodeck/adapters/stats/fit"
	"photodeck/domain/spectra"
	"photodeck/internal"
	"photodeck/ports"
)

// Chart payload keys referenced by slide ChartKey fields
const (
	ChartKinetics    = "kinetics"
	ChartCalibration = "calibration"
	ChartSpectra     = "spectra"
)

// SeriesSummary is the descriptive-statistics caption attached to a
// measured series
type SeriesSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	N      int     `json:"n"`
}

// CurveSeries is one synthesized curve of a spectra chart
type CurveSeries struct {
	Label string    `json:"label"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// ChartPayload carries everything the shell needs to draw one chart.
// Points/Fit are set for fitted charts, Curves for synthesized spectra.
type ChartPayload struct {
	Key     string             `json:"key"`
	Title   string             `json:"title"`
	XLabel  string             `json:"x_label"`
	YLabel  string             `json:"y_label"`
	Points  []fit.Point        `json:"points,omitempty"`
	Fit     *fit.Result        `json:"fit,omitempty"`
	FitLine []fit.Point        `json:"fit_line,omitempty"`
	Curves  []CurveSeries      `json:"curves,omitempty"`
	Summary *SeriesSummary     `json:"summary,omitempty"`
	Derived map[string]float64 `json:"derived,omitempty"`
}

// ChartService assembles the deck's chart payloads from a measurement
// source, falling back to the embedded data when the configured source
// fails. Payloads are deterministic, so they are built once and cached.
type ChartService struct {
	source   ports.MeasurementSourcePort
	fallback ports.MeasurementSourcePort
	log      *internal.Logger

	once   sync.Once
	charts map[string]*ChartPayload
}

// NewChartService creates the service. fallback must never fail; source
// may be nil to use the fallback directly.
func NewChartService(source, fallback ports.MeasurementSourcePort) *ChartService {
	return &ChartService{source: source, fallback: fallback, log: internal.DefaultLogger}
}

// Charts returns all chart payloads keyed by chart key. A chart whose
// inputs are degenerate is omitted with a warning; one broken widget
// must not empty the whole deck.
func (s *ChartService) Charts(ctx context.Context) map[string]*ChartPayload {
	s.once.Do(func() { s.charts = s.build(ctx) })
	return s.charts
}

// Chart returns one payload by key
func (s *ChartService) Chart(ctx context.Context, key string) (*ChartPayload, bool) {
	p, ok := s.Charts(ctx)[key]
	return p, ok
}

func (s *ChartService) build(ctx context.Context) map[string]*ChartPayload {
	var mu sync.Mutex
	charts := make(map[string]*ChartPayload)

	put := func(p *ChartPayload, err error) {
		if err != nil {
			s.log.Warn("[Charts] Skipping chart: %v", err)
			return
		}
		mu.Lock()
		charts[p.Key] = p
		mu.Unlock()
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { put(s.buildKinetics()); return nil })
	g.Go(func() error { put(s.buildCalibration()); return nil })
	g.Go(func() error { put(s.buildSpectra()); return nil })
	_ = g.Wait()

	return charts
}

// buildKinetics linearizes the pseudo-first-order decay ln(C0/C) = k·t
// and fits the rate constant.
func (s *ChartService) buildKinetics() (*ChartPayload, error) {
	raw := s.series(ports.MeasurementSourcePort.KineticsSeries, "kinetics")

	linearized := make([]fit.Point, 0, len(raw))
	for _, p := range raw {
		if p.Y <= 0 {
			s.log.Warn("[Charts] Dropping non-positive concentration ratio at t=%g", p.X)
			continue
		}
		linearized = append(linearized, fit.Point{X: p.X, Y: math.Log(1 / p.Y)})
	}

	res, err := fit.Linear(linearized)
	if err != nil {
		return nil, err
	}

	k := res.Slope // 1/s
	derived := map[string]float64{"rate_constant_per_s": k}
	if k > 0 {
		derived["half_life_s"] = math.Ln2 / k
	}

	return &ChartPayload{
		Key:     ChartKinetics,
		Title:   "Degradation Kinetics",
		XLabel:  "time (s)",
		YLabel:  "ln(C0/C)",
		Points:  linearized,
		Fit:     &res,
		FitLine: fitLine(res, linearized),
		Summary: summarize(raw),
		Derived: derived,
	}, nil
}

// buildCalibration fits the Beer–Lambert calibration line
func (s *ChartService) buildCalibration() (*ChartPayload, error) {
	points := s.series(ports.MeasurementSourcePort.CalibrationSeries, "calibration")

	res, err := fit.Linear(points)
	if err != nil {
		return nil, err
	}

	return &ChartPayload{
		Key:     ChartCalibration,
		Title:   "Concentration Calibration",
		XLabel:  "concentration (µM)",
		YLabel:  "absorbance @ 664 nm",
		Points:  points,
		Fit:     &res,
		FitLine: fitLine(res, points),
		Summary: summarize(points),
	}, nil
}

// buildSpectra synthesizes the two catalyst absorbance curves from the
// calibrated peak parameters.
func (s *ChartService) buildSpectra() (*ChartPayload, error) {
	grid := spectra.Grid(350, 750, 201)

	catalystA := spectra.Compose(
		spectra.Peak(420, 32, 0.95),
		spectra.Peak(520, 28, 0.55),
		spectra.Valley(470, 14, 0.18),
		spectra.DropOff(640, 16, 1.6),
	)
	catalystB := spectra.Compose(
		spectra.Peak(445, 40, 0.78),
		spectra.Peak(530, 34, 0.82),
		spectra.Valley(488, 12, 0.12),
		spectra.DropOff(665, 20, 1.7),
	)

	return &ChartPayload{
		Key:    ChartSpectra,
		Title:  "Absorbance Spectra",
		XLabel: "wavelength (nm)",
		YLabel: "absorbance (a.u.)",
		Curves: []CurveSeries{
			{Label: "Catalyst A", X: grid, Y: spectra.Sample(grid, catalystA)},
			{Label: "Catalyst B", X: grid, Y: spectra.Sample(grid, catalystB)},
		},
	}, nil
}

// series reads from the configured source, falling back to the embedded
// data when it fails
func (s *ChartService) series(read func(ports.MeasurementSourcePort) ([]fit.Point, error), name string) []fit.Point {
	if s.source != nil {
		points, err := read(s.source)
		if err == nil {
			return points
		}
		s.log.Warn("[Charts] Configured %s source failed (%v), using embedded data", name, err)
	}
	points, err := read(s.fallback)
	if err != nil {
		// The embedded source cannot fail; an empty series just yields a
		// skipped chart downstream.
		s.log.Error("[Charts] Embedded %s source failed: %v", name, err)
		return nil
	}
	return points
}

// fitLine samples the fitted line at the measured range's endpoints
func fitLine(res fit.Result, points []fit.Point) []fit.Point {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0].X, points[0].X
	for _, p := range points {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	return []fit.Point{{X: lo, Y: res.At(lo)}, {X: hi, Y: res.At(hi)}}
}

func summarize(points []fit.Point) *SeriesSummary {
	if len(points) == 0 {
		return nil
	}
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	mean, _ := stats.Mean(ys)
	sd, _ := stats.StandardDeviation(ys)
	min, _ := stats.Min(ys)
	max, _ := stats.Max(ys)
	return &SeriesSummary{Mean: mean, StdDev: sd, Min: min, Max: max, N: len(ys)}
}
