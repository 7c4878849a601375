// Package photometry computes apparent quantum yield from irradiation
// measurements. All functions are pure; formatting for display is the
// caller's concern.
package photometry

import "errors"

// Physical constants (CODATA 2018 exact values). Tests compare against
// these literals bit-for-bit, do not round them.
const (
	PlanckJs       = 6.62607015e-34 // J·s
	LightSpeedMs   = 2.99792458e8   // m/s
	AvogadroPerMol = 6.02214076e23  // 1/mol
)

// ErrUndefined is returned when an input makes the quantum yield
// physically meaningless (zero or negative wavelength, time, or power).
// Callers must render "undefined", never a NaN or Inf.
var ErrUndefined = errors.New("undefined AQY: non-positive wavelength, time, or power")

// Input holds the four measured quantities of one irradiation run
type Input struct {
	MolesDegraded      float64 `json:"moles_degraded"`
	IrradiationSeconds float64 `json:"irradiation_seconds"`
	OpticalPowerWatts  float64 `json:"optical_power_watts"`
	WavelengthNm       float64 `json:"wavelength_nm"`
}

// Result carries the yield plus the intermediate photon quantities the
// shell displays alongside it
type Result struct {
	AQYPercent        float64 `json:"aqy_percent"`
	PhotonEnergyJ     float64 `json:"photon_energy_j"`
	PhotonsPerSecond  float64 `json:"photons_per_second"`
	TotalPhotons      float64 `json:"total_photons"`
	MoleculesDegraded float64 `json:"molecules_degraded"`
}

// ComputeAQY maps one measurement run to its apparent quantum yield.
// AQY% = molecules degraded / photons delivered × 100, with photon
// energy E = hc/λ.
func ComputeAQY(in Input) (Result, error) {
	if in.WavelengthNm <= 0 || in.IrradiationSeconds <= 0 || in.OpticalPowerWatts <= 0 {
		return Result{}, ErrUndefined
	}

	photonEnergy := (PlanckJs * LightSpeedMs) / (in.WavelengthNm * 1e-9)
	photonsPerSecond := in.OpticalPowerWatts / photonEnergy
	totalPhotons := photonsPerSecond * in.IrradiationSeconds
	molecules := in.MolesDegraded * AvogadroPerMol

	return Result{
		AQYPercent:        (molecules / totalPhotons) * 100,
		PhotonEnergyJ:     photonEnergy,
		PhotonsPerSecond:  photonsPerSecond,
		TotalPhotons:      totalPhotons,
		MoleculesDegraded: molecules,
	}, nil
}
