// Package results stores sampling run summaries in a sqlite database.
//
// Only summaries are stored.
// The sampled chains themselves are never persisted beyond their run.
package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const tableRuns = "runs"

// A Run is the summary of one sampling run.
type Run struct {
	System     string
	Alpha      float64
	StepSize   float64
	NumSamples int
	MeanEnergy float64
	Variance   float64
	Acceptance float64
}

type DB struct {
	Path string

	db *sql.DB
}

// Open opens the database at path, creating it if necessary.
func Open(path string) (*DB, error) {
	d := &DB{Path: path}
	var err error
	d.db, err = sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	if err := prepareDB(d.db); err != nil {
		d.db.Close()
		return nil, errors.Wrap(err, "")
	}

	return d, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func prepareDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		system TEXT,
		alpha REAL,
		step_size REAL,
		num_samples INTEGER,
		mean_energy REAL,
		variance REAL,
		acceptance REAL,
		PRIMARY KEY (system, alpha)) STRICT`, tableRuns)
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Insert stores a run summary, replacing any previous summary of the same
// system and alpha.
func (d *DB) Insert(r Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`INSERT OR REPLACE INTO %s
		(system, alpha, step_size, num_samples, mean_energy, variance, acceptance)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, tableRuns)
	args := []any{r.System, r.Alpha, r.StepSize, r.NumSamples, r.MeanEnergy, r.Variance, r.Acceptance}
	if _, err := d.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%#v", r))
	}
	return nil
}

// List returns the summaries of a system ordered by alpha.
func (d *DB) List(system string) ([]Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT system, alpha, step_size, num_samples, mean_energy, variance, acceptance
		FROM %s WHERE system=? ORDER BY alpha`, tableRuns)
	rows, err := d.db.QueryContext(ctx, sqlStr, system)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.System, &r.Alpha, &r.StepSize, &r.NumSamples, &r.MeanEnergy, &r.Variance, &r.Acceptance); err != nil {
			return nil, errors.Wrap(err, "")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}

	return runs, nil
}

// Best returns the summary of a system with the minimum mean energy.
func (d *DB) Best(system string) (Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStr := fmt.Sprintf(`SELECT system, alpha, step_size, num_samples, mean_energy, variance, acceptance
		FROM %s WHERE system=? ORDER BY mean_energy, alpha LIMIT 1`, tableRuns)
	var r Run
	err := d.db.QueryRowContext(ctx, sqlStr, system).Scan(&r.System, &r.Alpha, &r.StepSize, &r.NumSamples, &r.MeanEnergy, &r.Variance, &r.Acceptance)
	switch {
	case err == sql.ErrNoRows:
		return Run{}, errors.Errorf("no runs for %s", system)
	case err != nil:
		return Run{}, errors.Wrap(err, "")
	default:
		return r, nil
	}
}
