package vmc

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/pkg/errors"

	"github.com/SuvamT0071/VMC/trial"
)

// OptimizeOptions are options for the alpha optimization sweep.
type OptimizeOptions struct {
	seed       uint64
	workers    int
	metropolis MetropolisOptions
}

// NewOptimizeOptions returns the default optimization options.
func NewOptimizeOptions() OptimizeOptions {
	opt := OptimizeOptions{}
	opt.seed = 1
	opt.workers = 1
	opt.metropolis = NewMetropolisOptions()
	return opt
}

// Seed sets the base seed.
// Each candidate derives its own generator stream from it,
// so that chains are independent across candidates.
func (opt OptimizeOptions) Seed(s uint64) OptimizeOptions {
	opt.seed = s
	return opt
}

// Workers sets the number of candidates evaluated concurrently.
// Candidate runs share no mutable state, and results are identical
// regardless of the number of workers.
func (opt OptimizeOptions) Workers(n int) OptimizeOptions {
	opt.workers = n
	return opt
}

// Metropolis sets the per-run sampler options.
func (opt OptimizeOptions) Metropolis(m MetropolisOptions) OptimizeOptions {
	opt.metropolis = m
	return opt
}

// A SweepResult is the outcome of an alpha optimization sweep.
type SweepResult struct {
	// MeanEnergy maps each surviving candidate to its mean sampled local energy.
	MeanEnergy map[float64]float64
	// Best is the candidate with the minimum mean energy.
	// Ties are broken by candidate scan order.
	Best float64
	// Degenerate lists the candidates excluded for producing empty traces.
	Degenerate []float64
}

// OptimizeAlpha runs one fresh Metropolis chain per candidate alpha,
// and selects the candidate minimizing the mean sampled local energy.
// Candidates whose runs produce empty traces are excluded from the
// selection with a warning; if no candidate survives, an error is returned.
func OptimizeAlpha(system trial.System, candidates []float64, start, stepSize float64, numSamples int, options ...OptimizeOptions) (SweepResult, error) {
	opt := NewOptimizeOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	if len(candidates) == 0 {
		return SweepResult{}, errors.Errorf("no candidates")
	}

	type outcome struct {
		stats Statistics
		err   error
	}
	outcomes := make([]outcome, len(candidates))
	run := func(i int) {
		rng := rand.New(rand.NewPCG(opt.seed, uint64(i)))
		trace, err := Metropolis(rng, system, start, stepSize, numSamples, candidates[i], opt.metropolis)
		if err != nil {
			outcomes[i].err = errors.Wrap(err, "")
			return
		}
		outcomes[i].stats, outcomes[i].err = trace.Statistics()
	}

	switch {
	case opt.workers <= 1:
		for i := range candidates {
			run(i)
		}
	default:
		var wg sync.WaitGroup
		sem := make(chan struct{}, opt.workers)
		for i := range candidates {
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				run(i)
				<-sem
			}()
		}
		wg.Wait()
	}

	result := SweepResult{MeanEnergy: make(map[float64]float64, len(candidates))}
	var found bool
	for i, alpha := range candidates {
		oc := outcomes[i]
		var degenerate *DegenerateRunError
		switch {
		case errors.As(oc.err, &degenerate):
			log.Printf("excluding alpha %f: %v", alpha, oc.err)
			result.Degenerate = append(result.Degenerate, alpha)
			continue
		case oc.err != nil:
			return SweepResult{}, errors.Wrap(oc.err, fmt.Sprintf("alpha %f", alpha))
		}

		result.MeanEnergy[alpha] = oc.stats.MeanEnergy
		if !found || oc.stats.MeanEnergy < result.MeanEnergy[result.Best] {
			result.Best, found = alpha, true
		}
	}
	if !found {
		return SweepResult{}, errors.Errorf("all %d candidates are degenerate", len(candidates))
	}
	return result, nil
}
