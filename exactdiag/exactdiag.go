// Package exactdiag computes reference ground state energies by exact
// diagonalization of finite difference Hamiltonians.
//
// The reference energies are independent of the Monte Carlo machinery,
// and serve to validate the variational estimates.
package exactdiag

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/SuvamT0071/VMC/trial"
)

// A Grid is a uniform discretization of the position axis with Dirichlet
// boundaries at Min and Max.
// The N interior points are Min + i*h, i = 1..N, where h = (Max-Min)/(N+1).
type Grid struct {
	Min float64
	Max float64
	N   int
}

// DefaultGrid returns a grid resolving the system's ground state energy to
// around 1e-3.
func DefaultGrid(s trial.System) Grid {
	switch s {
	case trial.Hydrogen:
		return Grid{Min: 0, Max: 40, N: 1000}
	default:
		return Grid{Min: -10, Max: 10, N: 600}
	}
}

// Hamiltonian returns the system Hamiltonian discretized on the grid with
// second order central differences.
// For Hydrogen, the operator is the s-wave radial Hamiltonian
// -1/2 d^2/dr^2 - 1/r acting on u = r*psi,
// so that grid positions are radii and Min must be non-negative.
// For QHO, the operator is -d^2/dx^2 + x^2.
func Hamiltonian(s trial.System, g Grid) (*mat.SymBandDense, error) {
	if g.N < 2 {
		return nil, errors.Errorf("grid size %d", g.N)
	}
	if !(g.Max > g.Min) {
		return nil, errors.Errorf("grid bounds %f %f", g.Min, g.Max)
	}

	var kinetic float64
	var potential func(float64) float64
	switch s {
	case trial.Hydrogen:
		if g.Min < 0 {
			return nil, errors.Errorf("grid bound %f", g.Min)
		}
		kinetic = 0.5
		potential = func(r float64) float64 { return -1 / r }
	default:
		kinetic = 1
		potential = func(x float64) float64 { return x * x }
	}

	h := (g.Max - g.Min) / float64(g.N+1)
	m := mat.NewSymBandDense(g.N, 1, nil)
	for i := 0; i < g.N; i++ {
		x := g.Min + float64(i+1)*h
		m.SetSymBand(i, i, 2*kinetic/(h*h)+potential(x))
		if i+1 < g.N {
			m.SetSymBand(i, i+1, -kinetic/(h*h))
		}
	}
	return m, nil
}

// GroundEnergy returns the smallest eigenvalue of the discretized Hamiltonian.
func GroundEnergy(s trial.System, g Grid) (float64, error) {
	m, err := Hamiltonian(s, g)
	if err != nil {
		return 0, errors.Wrap(err, "")
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(m, false); !ok {
		return 0, errors.Errorf("factorization failed %#v", g)
	}
	// Values are sorted in ascending order.
	vals := eig.Values(nil)
	return vals[0], nil
}
