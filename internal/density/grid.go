// Package density builds the remaining-coin overlap grid: for every cell, the
// fraction of run logs in which a coin was still present at that cell.
package density

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultSize is the side length of the grid when none is configured.
const DefaultSize = 20

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// PointOf truncates a pair of log values toward zero.
func PointOf(x, y float64) Point {
	return Point{X: int(math.Trunc(x)), Y: int(math.Trunc(y))}
}

// Grid is a size x size matrix of overlap densities. Row index is Y and column
// index is X, so the dense matrix is laid out as grid[y][x].
type Grid struct {
	size  int
	step  float64
	cells *mat.Dense
}

// NewGrid returns a zeroed grid whose per-file increment is 1/numFiles.
// It panics if size or numFiles is not positive.
func NewGrid(size, numFiles int) *Grid {
	if size <= 0 {
		panic("density: grid size must be positive")
	}
	if numFiles <= 0 {
		panic("density: file count must be positive")
	}
	return &Grid{
		size:  size,
		step:  1.0 / float64(numFiles),
		cells: mat.NewDense(size, size, nil),
	}
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

// Step returns the increment one file contributes to a cell.
func (g *Grid) Step() float64 { return g.step }

// At returns the density of cell (x, y).
func (g *Grid) At(x, y int) float64 { return g.cells.At(y, x) }

// InBounds reports whether p names a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// AddFile folds the observations of one file into the grid. Repeated points
// count once and points outside the grid are ignored. It returns the number
// of distinct points that landed on the grid and the number dropped.
func (g *Grid) AddFile(points []Point) (added, dropped int) {
	seen := make(map[Point]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		if !g.InBounds(p) {
			dropped++
			continue
		}
		g.cells.Set(p.Y, p.X, g.cells.At(p.Y, p.X)+g.step)
		added++
	}
	return added, dropped
}

// Max returns the largest cell value.
func (g *Grid) Max() float64 {
	return mat.Max(g.cells)
}

// Rows copies the grid into a [y][x] slice.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.size)
	for y := range out {
		out[y] = mat.Row(nil, y, g.cells)
	}
	return out
}

// The methods below satisfy gonum.org/v1/plot/plotter.GridXYZ. Each cell is
// centred on its coordinate plus one half so the image spans [0, size].

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) { return g.size, g.size }

// Z returns the value of column c, row r.
func (g *Grid) Z(c, r int) float64 { return g.cells.At(r, c) }

// X returns the centre of column c.
func (g *Grid) X(c int) float64 { return float64(c) + 0.5 }

// Y returns the centre of row r.
func (g *Grid) Y(r int) float64 { return float64(r) + 0.5 }
