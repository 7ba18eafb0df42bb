// Package trial implements the trial wavefunctions of the systems under study.
//
// Every function in this package is a pure function of its arguments.
// Positions and energies are in natural units:
// Hartree units for Hydrogen, and units such that H = -d^2/dx^2 + x^2 for QHO.
package trial

import (
	"fmt"
	"math"
)

// System enumerates the supported physical systems.
type System int

const (
	// Hydrogen is the hydrogen atom.
	// Positions are the radial coordinate r, which must stay strictly positive.
	Hydrogen System = iota
	// QHO is the quantum harmonic oscillator.
	// Positions are unrestricted.
	QHO
)

func (s System) String() string {
	switch s {
	case Hydrogen:
		return "hydrogen"
	case QHO:
		return "qho"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// A DomainError reports an evaluation at a position outside a system's domain.
type DomainError struct {
	System   System
	Position float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s is undefined at position %f", e.System, e.Position)
}

// Amplitude returns the unnormalized trial amplitude at position x.
// For Hydrogen, x must be non-negative, where x = 0 yields a zero amplitude.
func Amplitude(s System, x, alpha float64) float64 {
	switch s {
	case Hydrogen:
		return alpha * x * math.Exp(-alpha*x)
	default:
		return math.Sqrt(alpha) * math.Pow(math.Pi, -0.25) * math.Exp(-alpha*alpha*x*x/2)
	}
}

// Density returns the squared modulus of the trial amplitude at position x.
func Density(s System, x, alpha float64) float64 {
	a := Amplitude(s, x, alpha)
	return a * a
}

// LocalEnergy returns H*psi/psi evaluated at position x,
// where H is the Hamiltonian and psi the trial wavefunction.
// The derivatives of psi have been carried out analytically beforehand,
// so that no numerical differentiation is involved.
// For Hydrogen, positions x <= 0 fail with a DomainError.
func LocalEnergy(s System, x, alpha float64) (float64, error) {
	switch s {
	case Hydrogen:
		if x <= 0 {
			return 0, &DomainError{System: s, Position: x}
		}
		return -1/x - alpha/2*(alpha-2/x), nil
	default:
		return alpha*alpha + x*x*(1-math.Pow(alpha, 4)), nil
	}
}

// Analytic returns the closed form ground state wavefunction.
// It is independent of the sampling machinery,
// and serves only as a comparison baseline.
func Analytic(s System, x, alpha float64) float64 {
	switch s {
	case Hydrogen:
		return math.Pow(alpha, 1.5) * math.Exp(-alpha*x) / math.Sqrt(math.Pi)
	default:
		return math.Pow(math.Pi, -0.25) * math.Exp(-x*x/2)
	}
}
