package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	vmc "github.com/SuvamT0071/VMC"
	"github.com/SuvamT0071/VMC/exactdiag"
	"github.com/SuvamT0071/VMC/results"
	"github.com/SuvamT0071/VMC/trial"
)

const (
	fnameDone       = "done.txt"
	fnameStatistics = "statistics.txt"
	fnameDB         = "runs.db"
)

var (
	runDir     = flag.String("d", filepath.Join("runs", "vmc"), "run directory")
	numSamples = flag.Int("n", 100000, "proposals per run")
	stepSize   = flag.Float64("step", 0.5, "random walk step size")
)

type config struct {
	system trial.System
	alpha  float64
	start  float64
	seed   uint64
}

func solve(db *results.DB, dir string, c config) error {
	donePath := filepath.Join(dir, fnameDone)
	if _, err := os.Stat(donePath); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}

	rng := vmc.NewRand(c.seed)
	trace, err := vmc.Metropolis(rng, c.system, c.start, *stepSize, *numSamples, c.alpha)
	if err != nil {
		return errors.Wrap(err, "")
	}
	stats, err := trace.Statistics()
	if err != nil {
		return errors.Wrap(err, "")
	}

	b, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "")
	}
	sPath := filepath.Join(dir, fnameStatistics)
	if err := os.WriteFile(sPath, b, 0644); err != nil {
		return errors.Wrap(err, "")
	}

	run := results.Run{
		System:     c.system.String(),
		Alpha:      c.alpha,
		StepSize:   *stepSize,
		NumSamples: *numSamples,
		MeanEnergy: stats.MeanEnergy,
		Variance:   stats.Variance,
		Acceptance: stats.Acceptance,
	}
	if err := db.Insert(run); err != nil {
		return errors.Wrap(err, "")
	}

	if err := os.WriteFile(donePath, nil, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if err := mainWithErr(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr() error {
	if err := os.MkdirAll(*runDir, os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	db, err := results.Open(filepath.Join(*runDir, fnameDB))
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer db.Close()

	appendConfigs := func(configs []config, system trial.System, start float64) []config {
		alphas := make([]float64, 11)
		floats.Span(alphas, 0.5, 1.5)
		for i, alpha := range alphas {
			configs = append(configs, config{system: system, alpha: alpha, start: start, seed: uint64(i) + 1})
		}
		return configs
	}

	configs := make([]config, 0)
	configs = appendConfigs(configs, trial.Hydrogen, 1)
	configs = appendConfigs(configs, trial.QHO, 0)

	// Sample every configuration.
	for _, c := range configs {
		dir := filepath.Join(*runDir, c.system.String(), fmt.Sprintf("%f", c.alpha))
		if err := solve(db, dir, c); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %f", c.system, c.alpha))
		}
		log.Printf("%s %f", c.system, c.alpha)
	}

	// Gather results and print them next to the exact reference energies.
	fmt.Printf("system,alpha,mean_energy,variance,acceptance,exact\n")
	for _, system := range []trial.System{trial.Hydrogen, trial.QHO} {
		exact, err := exactdiag.GroundEnergy(system, exactdiag.DefaultGrid(system))
		if err != nil {
			return errors.Wrap(err, system.String())
		}

		runs, err := db.List(system.String())
		if err != nil {
			return errors.Wrap(err, system.String())
		}
		for _, r := range runs {
			fmt.Printf("%s,%f,%f,%f,%f,%f\n", r.System, r.Alpha, r.MeanEnergy, r.Variance, r.Acceptance, exact)
		}

		best, err := db.Best(system.String())
		if err != nil {
			return errors.Wrap(err, system.String())
		}
		log.Printf("%s best alpha %f mean energy %f exact %f", system, best.Alpha, best.MeanEnergy, exact)
	}
	return nil
}
