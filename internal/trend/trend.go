// Package trend collects score-over-time series from per-run logs. Each log
// holds the score in its first column and the time in its second.
package trend

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/monitoring"
	"github.com/banshee-data/coinviz/internal/runlog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var logf = monitoring.Component("trend")

var (
	// ErrNoInput is returned when neither directory holds a CSV file.
	ErrNoInput = errors.New("trend: no CSV files found")
	// ErrNoReadableInput is returned when CSV files exist but none of them
	// could be read.
	ErrNoReadableInput = errors.New("trend: no readable CSV files")
)

// Group distinguishes experiment runs from the baseline strategy.
type Group string

const (
	Experiment Group = "experiment"
	Baseline   Group = "baseline"
)

// Sample is one (time, score) observation.
type Sample struct {
	Time  float64
	Score float64
}

// Series is the trace of one run.
type Series struct {
	Name    string
	Group   Group
	Samples []Sample
}

// Final returns the last score of the run.
func (s Series) Final() (float64, bool) {
	if len(s.Samples) == 0 {
		return 0, false
	}
	return s.Samples[len(s.Samples)-1].Score, true
}

// Set holds every loaded series.
type Set struct {
	Experiment []Series
	Baseline   []Series
}

// All returns experiment series followed by baseline series.
func (s *Set) All() []Series {
	out := make([]Series, 0, len(s.Experiment)+len(s.Baseline))
	out = append(out, s.Experiment...)
	return append(out, s.Baseline...)
}

// Load reads every *.csv directly inside experimentDir and baselineDir. The
// baseline directory may be empty or missing. Unreadable files are logged and
// skipped; if every discovered file is unreadable the error wraps
// ErrNoReadableInput.
func Load(fsys fsutil.FileSystem, experimentDir, baselineDir string, policy runlog.RowPolicy) (*Set, error) {
	exp, found, err := loadDir(fsys, experimentDir, Experiment, policy)
	if err != nil {
		return nil, err
	}
	var base []Series
	if baselineDir != "" {
		var n int
		if base, n, err = loadDir(fsys, baselineDir, Baseline, policy); err != nil {
			return nil, err
		}
		found += n
	}
	switch {
	case found == 0:
		return nil, ErrNoInput
	case len(exp) == 0 && len(base) == 0:
		return nil, fmt.Errorf("%w: all %d files failed", ErrNoReadableInput, found)
	}
	return &Set{Experiment: exp, Baseline: base}, nil
}

// loadDir returns the series read from dir and the number of CSV files found.
func loadDir(fsys fsutil.FileSystem, dir string, group Group, policy runlog.RowPolicy) ([]Series, int, error) {
	files, err := fsys.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, 0, fmt.Errorf("trend: list %s: %w", dir, err)
	}

	series := make([]Series, 0, len(files))
	for _, file := range files {
		tbl, err := runlog.ReadFile(fsys, file, policy)
		if err != nil {
			logf("skipping %s: %v", file, err)
			continue
		}
		s := Series{
			Name:    strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
			Group:   group,
			Samples: make([]Sample, len(tbl.Pairs)),
		}
		for i, p := range tbl.Pairs {
			s.Samples[i] = Sample{Time: p.B, Score: p.A}
		}
		series = append(series, s)
	}
	return series, len(files), nil
}

// Summary describes the final scores of one group.
type Summary struct {
	Group  Group
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarise computes final-score statistics for series. Runs with no samples
// are not counted.
func Summarise(group Group, series []Series) Summary {
	finals := make([]float64, 0, len(series))
	for _, s := range series {
		if v, ok := s.Final(); ok {
			finals = append(finals, v)
		}
	}

	sum := Summary{Group: group, Runs: len(finals)}
	if len(finals) == 0 {
		return sum
	}
	if len(finals) == 1 {
		sum.Mean = finals[0]
	} else {
		sum.Mean, sum.StdDev = stat.MeanStdDev(finals, nil)
	}
	sum.Min = floats.Min(finals)
	sum.Max = floats.Max(finals)
	return sum
}
