// Package vmc estimates ground state energies by variational Monte Carlo.
//
// The energy of a trial wavefunction is the expectation of its local energy
// over its probability density.
// This expectation is estimated by a Metropolis random walk,
// and minimized over the wavefunction's variational parameter alpha.
//
// References:
//   - Chapter 12 Quantum Monte Carlo methods, Computational Physics, Jos Thijssen
package vmc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/SuvamT0071/VMC/trial"
)

// DensityEpsilon is the default stabilizer added to the denominator of the
// acceptance ratio.
// It guards against a previous density that underflowed to exactly zero,
// and does not bias densities bounded away from zero.
const DensityEpsilon = 1e-10

// A Sample is the walker position after one Metropolis decision,
// together with the local energy at that position.
type Sample struct {
	Position float64
	Energy   float64
}

// A Trace is the record of one Metropolis run.
type Trace struct {
	// Samples holds one entry per proposal that passed the domain guard,
	// whether or not the proposal was accepted.
	Samples []Sample
	// Accepted counts the proposals that moved the walker.
	Accepted int
	// Proposed counts all attempted proposals,
	// including those rejected by the domain guard.
	Proposed int
}

// MetropolisOptions are options for a Metropolis run.
type MetropolisOptions struct {
	epsilon float64
	burnIn  int
}

// NewMetropolisOptions returns the default Metropolis options.
func NewMetropolisOptions() MetropolisOptions {
	opt := MetropolisOptions{}
	opt.epsilon = DensityEpsilon
	opt.burnIn = 0
	return opt
}

// Epsilon sets the acceptance ratio stabilizer.
func (opt MetropolisOptions) Epsilon(e float64) MetropolisOptions {
	opt.epsilon = e
	return opt
}

// BurnIn discards the first n samples of the trace.
func (opt MetropolisOptions) BurnIn(n int) MetropolisOptions {
	opt.burnIn = n
	return opt
}

// NewRand returns a reproducible generator for a sampling run.
// Runs with distinct seeds are statistically decorrelated.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Metropolis performs a random walk whose stationary distribution is the
// trial density of the system at the given alpha.
// Proposals are drawn uniformly within stepSize of the current position.
//
// The walk attempts exactly numSamples proposals.
// For Hydrogen, proposals crossing into r <= 0 are rejected before the
// acceptance test and record nothing, but still consume one attempt,
// so the trace may be shorter than numSamples.
// An empty trace is a valid output, not an error.
func Metropolis(rng *rand.Rand, system trial.System, start, stepSize float64, numSamples int, alpha float64, options ...MetropolisOptions) (Trace, error) {
	opt := NewMetropolisOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	if !(stepSize > 0) {
		return Trace{}, errors.Errorf("step size %f", stepSize)
	}
	if numSamples < 0 {
		return Trace{}, errors.Errorf("num samples %d", numSamples)
	}
	if system == trial.Hydrogen && start <= 0 {
		return Trace{}, &trial.DomainError{System: system, Position: start}
	}

	trace := Trace{Samples: make([]Sample, 0, numSamples)}
	x := start
	density := trial.Density(system, x, alpha)
	for range numSamples {
		trace.Proposed++
		xNew := x + (2*rng.Float64()-1)*stepSize
		if system == trial.Hydrogen && xNew <= 0 {
			continue
		}

		densityNew := trial.Density(system, xNew, alpha)
		if densityNew/(density+opt.epsilon) > rng.Float64() {
			x, density = xNew, densityNew
			trace.Accepted++
		}

		energy, err := trial.LocalEnergy(system, x, alpha)
		if err != nil {
			return Trace{}, errors.Wrap(err, "")
		}
		trace.Samples = append(trace.Samples, Sample{Position: x, Energy: energy})
	}

	if opt.burnIn > 0 {
		trace.Samples = trace.Samples[min(opt.burnIn, len(trace.Samples)):]
	}
	return trace, nil
}

// A DegenerateRunError reports a run whose trace is empty,
// leaving its mean energy undefined.
type DegenerateRunError struct {
	// Proposed is the number of attempted proposals of the run.
	Proposed int
}

func (e *DegenerateRunError) Error() string {
	return fmt.Sprintf("empty trace after %d proposals", e.Proposed)
}

// Statistics summarize the local energies of a trace.
type Statistics struct {
	MeanEnergy float64
	Variance   float64
	StdErr     float64
	// Acceptance is the fraction of proposals that moved the walker.
	Acceptance float64
	Samples    int
}

// Statistics reduces the trace's local energies.
// An empty trace fails with a DegenerateRunError.
func (t Trace) Statistics() (Statistics, error) {
	if len(t.Samples) == 0 {
		return Statistics{}, &DegenerateRunError{Proposed: t.Proposed}
	}

	energies := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		energies[i] = s.Energy
	}

	var stats Statistics
	stats.Samples = len(energies)
	stats.MeanEnergy = stat.Mean(energies, nil)
	if len(energies) > 1 {
		stats.Variance = stat.Variance(energies, nil)
		stats.StdErr = stat.StdErr(math.Sqrt(stats.Variance), float64(len(energies)))
	}
	if t.Proposed > 0 {
		stats.Acceptance = float64(t.Accepted) / float64(t.Proposed)
	}
	return stats, nil
}
