// Package overlay loads the reference coin positions drawn on top of the
// density grid.
package overlay

import (
	"fmt"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/monitoring"
	"github.com/banshee-data/coinviz/internal/runlog"
)

var logf = monitoring.Component("overlay")

// Marker is one highlighted position, in log units.
type Marker struct {
	X, Y float64
}

// HighlightSet is an ordered list of markers read verbatim from one file.
type HighlightSet struct {
	Label   string
	Source  string
	Markers []Marker
}

// Empty reports whether there is nothing to draw.
func (h HighlightSet) Empty() bool { return len(h.Markers) == 0 }

// Centred returns the markers shifted by half a cell so they sit in the
// middle of the cell they name.
func (h HighlightSet) Centred() []Marker {
	out := make([]Marker, len(h.Markers))
	for i, m := range h.Markers {
		out[i] = Marker{X: m.X + 0.5, Y: m.Y + 0.5}
	}
	return out
}

// Overlay holds the two reference sets.
type Overlay struct {
	HighScore HighlightSet
	LowScore  HighlightSet
}

const (
	HighScoreLabel = "High Score Coin Position"
	LowScoreLabel  = "Low Score Coin Position"
)

// Load reads the high- and low-score files. An empty path yields an empty set.
// Rows are kept as-is: no dedupe and no bounds checks.
func Load(fsys fsutil.FileSystem, highPath, lowPath string, policy runlog.RowPolicy) (*Overlay, error) {
	high, err := loadSet(fsys, HighScoreLabel, highPath, policy)
	if err != nil {
		return nil, err
	}
	low, err := loadSet(fsys, LowScoreLabel, lowPath, policy)
	if err != nil {
		return nil, err
	}
	return &Overlay{HighScore: high, LowScore: low}, nil
}

func loadSet(fsys fsutil.FileSystem, label, path string, policy runlog.RowPolicy) (HighlightSet, error) {
	set := HighlightSet{Label: label, Source: path}
	if path == "" {
		return set, nil
	}

	tbl, err := runlog.ReadFile(fsys, path, policy)
	if err != nil {
		return set, fmt.Errorf("overlay %q: %w", label, err)
	}
	for _, skipped := range tbl.Skipped {
		logf("%v", skipped)
	}

	set.Markers = make([]Marker, len(tbl.Pairs))
	for i, p := range tbl.Pairs {
		set.Markers[i] = Marker{X: p.A, Y: p.B}
	}
	return set, nil
}
