// Package runlog reads the CSV logs written by the simulation. Only the first
// two columns of each row are used, by position; header names are ignored.
package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/coinviz/internal/fsutil"
)

// RowPolicy decides what happens to a row whose first two columns are not numeric.
type RowPolicy string

const (
	// SkipRow drops the malformed row and keeps reading the file.
	SkipRow RowPolicy = "skip_row"
	// FailFile rejects the whole file on the first malformed row.
	FailFile RowPolicy = "fail_file"
)

// Valid reports whether p is a known policy.
func (p RowPolicy) Valid() bool {
	return p == SkipRow || p == FailFile
}

// MalformedRowError describes a row that could not be turned into a numeric pair.
type MalformedRowError struct {
	File   string
	Line   int
	Column int // zero-based; -1 when the row is too short
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s:%d: row has fewer than 2 columns", e.File, e.Line)
	}
	return fmt.Sprintf("%s:%d: column %d value %q is not numeric: %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// errNotFinite marks NaN and Inf values, which cannot name a cell or a point.
var errNotFinite = errors.New("value is not finite")

// Pair is the numeric content of the first two columns of one row.
type Pair struct {
	A, B float64
}

// Table is one parsed log file.
type Table struct {
	File    string
	Pairs   []Pair
	Skipped []*MalformedRowError
}

// ReadFile opens path on fsys and parses it with ParsePairs.
func ReadFile(fsys fsutil.FileSystem, path string, policy RowPolicy) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ParsePairs(f, path, policy)
}

// ParsePairs reads a header row followed by data rows from r. A file with no
// rows at all yields an empty table. CSV syntax errors always fail the file;
// non-numeric values follow policy.
func ParsePairs(r io.Reader, name string, policy RowPolicy) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	t := &Table{File: name}

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return t, nil
		}
		return nil, fmt.Errorf("read header %s: %w", name, err)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		line, _ := cr.FieldPos(0)

		pair, rowErr := parseRow(rec, name, line)
		if rowErr != nil {
			if policy == FailFile {
				return nil, rowErr
			}
			t.Skipped = append(t.Skipped, rowErr)
			continue
		}
		t.Pairs = append(t.Pairs, pair)
	}

	return t, nil
}

func parseRow(rec []string, name string, line int) (Pair, *MalformedRowError) {
	if len(rec) < 2 {
		return Pair{}, &MalformedRowError{File: name, Line: line, Column: -1}
	}

	var vals [2]float64
	for i := 0; i < 2; i++ {
		raw := strings.TrimSpace(rec[i])
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errNotFinite
		}
		if err != nil {
			return Pair{}, &MalformedRowError{File: name, Line: line, Column: i, Value: raw, Err: err}
		}
		vals[i] = v
	}
	return Pair{A: vals[0], B: vals[1]}, nil
}
