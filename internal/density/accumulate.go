package density

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/monitoring"
	"github.com/banshee-data/coinviz/internal/runlog"
)

var logf = monitoring.Component("density")

// ErrNoInput is returned when the log directory holds no CSV files.
var ErrNoInput = errors.New("density: no CSV files found")

// FileFailure records a log that could not be read. Failed files still count
// toward the per-file weight.
type FileFailure struct {
	File string
	Err  error
}

// Result summarises one accumulation run.
type Result struct {
	Grid        *Grid
	Files       []string
	Failed      []FileFailure
	SkippedRows int
	Dropped     int
}

// Options controls Accumulate.
type Options struct {
	Size   int
	Policy runlog.RowPolicy
	// RunID tags the summary log line.
	RunID string
}

// Accumulate builds a grid from every *.csv file directly inside dir. Each
// file adds 1/len(files) to every distinct in-bounds cell it mentions. A file
// that fails to read is logged and recorded in Result.Failed; the remaining
// files are still processed.
func Accumulate(fsys fsutil.FileSystem, dir string, opts Options) (*Result, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < 0 {
		return nil, fmt.Errorf("density: invalid grid size %d", opts.Size)
	}
	if opts.Policy == "" {
		opts.Policy = runlog.SkipRow
	}

	files, err := fsys.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("density: list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}

	res := &Result{
		Grid:  NewGrid(opts.Size, len(files)),
		Files: files,
	}

	for _, file := range files {
		tbl, err := runlog.ReadFile(fsys, file, opts.Policy)
		if err != nil {
			logf("skipping %s: %v", file, err)
			res.Failed = append(res.Failed, FileFailure{File: file, Err: err})
			continue
		}
		res.SkippedRows += len(tbl.Skipped)

		points := make([]Point, len(tbl.Pairs))
		for i, p := range tbl.Pairs {
			points[i] = PointOf(p.A, p.B)
		}
		_, dropped := res.Grid.AddFile(points)
		res.Dropped += dropped
	}

	logf("run=%s %d files, step=%.4f, failed=%d, skipped_rows=%d, out_of_bounds=%d",
		opts.RunID, len(files), res.Grid.Step(), len(res.Failed), res.SkippedRows, res.Dropped)

	return res, nil
}
