package photometry

import (
	"math"
	"testing"
)

func TestComputeAQY_ReferenceRun(t *testing.T) {
	// 1 µmol degraded over 1 h under 10 mW of 525 nm light.
	res, err := ComputeAQY(Input{
		MolesDegraded:      1e-6,
		IrradiationSeconds: 3600,
		OpticalPowerWatts:  0.01,
		WavelengthNm:       525,
	})
	if err != nil {
		t.Fatalf("ComputeAQY failed: %v", err)
	}

	// E = hc/λ, computed by hand from the exact constants.
	wantEnergy := (PlanckJs * LightSpeedMs) / (525e-9)
	if res.PhotonEnergyJ != wantEnergy {
		t.Errorf("Photon energy mismatch: got %g, want %g", res.PhotonEnergyJ, wantEnergy)
	}
	if math.Abs(res.PhotonEnergyJ-3.783e-19) > 1e-22 {
		t.Errorf("Photon energy at 525 nm should be ≈3.783e-19 J, got %g", res.PhotonEnergyJ)
	}

	wantPerSecond := 0.01 / wantEnergy
	if res.PhotonsPerSecond != wantPerSecond {
		t.Errorf("Photons/s mismatch: got %g, want %g", res.PhotonsPerSecond, wantPerSecond)
	}
	if res.TotalPhotons != wantPerSecond*3600 {
		t.Errorf("Total photons mismatch: got %g, want %g", res.TotalPhotons, wantPerSecond*3600)
	}

	wantMolecules := 1e-6 * AvogadroPerMol
	if res.MoleculesDegraded != wantMolecules {
		t.Errorf("Molecules mismatch: got %g, want %g", res.MoleculesDegraded, wantMolecules)
	}

	wantAQY := (wantMolecules / (wantPerSecond * 3600)) * 100
	if res.AQYPercent != wantAQY {
		t.Errorf("AQY mismatch: got %g, want %g", res.AQYPercent, wantAQY)
	}
	if !(res.AQYPercent > 0) || math.IsInf(res.AQYPercent, 0) || math.IsNaN(res.AQYPercent) {
		t.Errorf("AQY should be a finite positive percentage, got %g", res.AQYPercent)
	}
}

func TestComputeAQY_Deterministic(t *testing.T) {
	in := Input{MolesDegraded: 2.5e-7, IrradiationSeconds: 1800, OpticalPowerWatts: 0.005, WavelengthNm: 420}
	a, err1 := ComputeAQY(in)
	b, err2 := ComputeAQY(in)
	if err1 != nil || err2 != nil {
		t.Fatalf("ComputeAQY failed: %v %v", err1, err2)
	}
	if a != b {
		t.Errorf("Same input must produce identical results: %+v vs %+v", a, b)
	}
}

func TestComputeAQY_UndefinedInputs(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero wavelength", Input{MolesDegraded: 1e-6, IrradiationSeconds: 3600, OpticalPowerWatts: 0.01}},
		{"negative wavelength", Input{MolesDegraded: 1e-6, IrradiationSeconds: 3600, OpticalPowerWatts: 0.01, WavelengthNm: -1}},
		{"zero time", Input{MolesDegraded: 1e-6, OpticalPowerWatts: 0.01, WavelengthNm: 525}},
		{"zero power", Input{MolesDegraded: 1e-6, IrradiationSeconds: 3600, WavelengthNm: 525}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ComputeAQY(tc.in)
			if err != ErrUndefined {
				t.Fatalf("Expected ErrUndefined, got %v", err)
			}
			// The zero Result must not smuggle out an Inf.
			if math.IsInf(res.AQYPercent, 0) || math.IsNaN(res.AQYPercent) {
				t.Errorf("Undefined result must not carry NaN/Inf, got %g", res.AQYPercent)
			}
		})
	}
}

func TestComputeAQY_ZeroMolesIsZeroYield(t *testing.T) {
	// No degradation is a defined measurement: the yield is simply zero.
	res, err := ComputeAQY(Input{IrradiationSeconds: 3600, OpticalPowerWatts: 0.01, WavelengthNm: 525})
	if err != nil {
		t.Fatalf("ComputeAQY failed: %v", err)
	}
	if res.AQYPercent != 0 {
		t.Errorf("Expected zero yield for zero moles, got %g", res.AQYPercent)
	}
}
