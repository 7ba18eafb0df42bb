package trial

import (
	"fmt"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestLocalEnergy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		system System
		x      float64
		alpha  float64
		energy float64
	}{
		// At alpha=1, the hydrogen trial state is exact and the local
		// energy is constantly the ground energy -0.5.
		{system: Hydrogen, x: 0.1, alpha: 1, energy: -0.5},
		{system: Hydrogen, x: 1, alpha: 1, energy: -0.5},
		{system: Hydrogen, x: 7, alpha: 1, energy: -0.5},
		{system: Hydrogen, x: 2, alpha: 0.5, energy: -0.375},
		{system: Hydrogen, x: 1, alpha: 2, energy: -1},
		// At alpha=1, the QHO trial state is exact with ground energy 1.
		{system: QHO, x: 0, alpha: 1, energy: 1},
		{system: QHO, x: -3, alpha: 1, energy: 1},
		{system: QHO, x: 2, alpha: 0.5, energy: 0.25 + 4*(1-0.0625)},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s %f %f", test.system, test.x, test.alpha), func(t *testing.T) {
			t.Parallel()
			energy, err := LocalEnergy(test.system, test.x, test.alpha)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if !(math.Abs(energy-test.energy) < 1e-12) {
				t.Fatalf("%f, expected %f", energy, test.energy)
			}
		})
	}
}

func TestLocalEnergyDomain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x     float64
		alpha float64
	}{
		{x: 0, alpha: 1},
		{x: -0.001, alpha: 1},
		{x: -1e9, alpha: 0.5},
		{x: 0, alpha: 100},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%f %f", test.x, test.alpha), func(t *testing.T) {
			t.Parallel()
			_, err := LocalEnergy(Hydrogen, test.x, test.alpha)
			var domainErr *DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("%+v, expected DomainError", err)
			}
			if domainErr.Position != test.x {
				t.Fatalf("%f, expected %f", domainErr.Position, test.x)
			}
		})
	}
}

func TestAmplitude(t *testing.T) {
	t.Parallel()
	tests := []struct {
		system    System
		x         float64
		alpha     float64
		amplitude float64
	}{
		{system: Hydrogen, x: 0, alpha: 1, amplitude: 0},
		{system: Hydrogen, x: 1, alpha: 1, amplitude: math.Exp(-1)},
		{system: Hydrogen, x: 2, alpha: 0.5, amplitude: math.Exp(-1)},
		{system: QHO, x: 0, alpha: 1, amplitude: math.Pow(math.Pi, -0.25)},
		{system: QHO, x: 1, alpha: 1, amplitude: math.Pow(math.Pi, -0.25) * math.Exp(-0.5)},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s %f %f", test.system, test.x, test.alpha), func(t *testing.T) {
			t.Parallel()
			amplitude := Amplitude(test.system, test.x, test.alpha)
			if !(math.Abs(amplitude-test.amplitude) < 1e-12) {
				t.Fatalf("%f, expected %f", amplitude, test.amplitude)
			}

			density := Density(test.system, test.x, test.alpha)
			if !(math.Abs(density-test.amplitude*test.amplitude) < 1e-12) {
				t.Fatalf("%f, expected %f", density, test.amplitude*test.amplitude)
			}
		})
	}
}

func TestDensityNonNegative(t *testing.T) {
	t.Parallel()
	for _, system := range []System{Hydrogen, QHO} {
		for _, alpha := range []float64{0.1, 0.5, 1, 2, 10} {
			for x := 0.01; x < 20; x += 0.37 {
				if density := Density(system, x, alpha); !(density >= 0) {
					t.Fatalf("%s %f %f: %f", system, x, alpha, density)
				}
			}
		}
	}
}

func TestAnalytic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		system System
		x      float64
		alpha  float64
		psi    float64
	}{
		{system: Hydrogen, x: 0, alpha: 1, psi: 1 / math.Sqrt(math.Pi)},
		{system: Hydrogen, x: 1, alpha: 1, psi: math.Exp(-1) / math.Sqrt(math.Pi)},
		{system: Hydrogen, x: 1, alpha: 2, psi: math.Pow(2, 1.5) * math.Exp(-2) / math.Sqrt(math.Pi)},
		{system: QHO, x: 0, alpha: 1, psi: math.Pow(math.Pi, -0.25)},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s %f %f", test.system, test.x, test.alpha), func(t *testing.T) {
			t.Parallel()
			psi := Analytic(test.system, test.x, test.alpha)
			if !(math.Abs(psi-test.psi) < 1e-12) {
				t.Fatalf("%f, expected %f", psi, test.psi)
			}
		})
	}
}

// TestIdempotent checks that repeated evaluations with identical inputs
// yield identical outputs.
func TestIdempotent(t *testing.T) {
	t.Parallel()
	for _, system := range []System{Hydrogen, QHO} {
		const x, alpha = 1.37, 0.83
		e0, err := LocalEnergy(system, x, alpha)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		e1, err := LocalEnergy(system, x, alpha)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if e0 != e1 {
			t.Fatalf("%f, expected %f", e1, e0)
		}
		if p0, p1 := Analytic(system, x, alpha), Analytic(system, x, alpha); p0 != p1 {
			t.Fatalf("%f, expected %f", p1, p0)
		}
	}
}
