// SPDX-License-Identifier: MIT
package diffusion

import (
	"github.com/lunapnr/pnrcore/design"
)

// Bin holds one grid cell's density state (spec §4.5).
type Bin struct {
	Density float64
	Vx, Vy  float64
}

// Grid is the regular 2-D bin array covering a placement rectangle.
// Out-of-range access (diffusion.Grid.At) returns a synthetic
// boundary bin instead of panicking, matching the original's dummy-bin
// behavior for out-of-bounds reads: it acts as a reflecting wall by
// reporting a configurable high density and zero velocity.
type Grid struct {
	rect     design.Rect
	binSize  design.Size
	cols     int
	rows     int
	bins     []Bin
	boundary float64
}

// NewGrid lays out a bin grid of binSize cells covering rect, rounding
// the bin count up so the grid fully contains rect.
func NewGrid(rect design.Rect, binSize design.Size, boundaryDensity float64) *Grid {
	if binSize.W <= 0 {
		binSize.W = 1
	}
	if binSize.H <= 0 {
		binSize.H = 1
	}

	cols := int((rect.Size.W + binSize.W - 1) / binSize.W)
	rows := int((rect.Size.H + binSize.H - 1) / binSize.H)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		rect:     rect,
		binSize:  binSize,
		cols:     cols,
		rows:     rows,
		bins:     make([]Bin, cols*rows),
		boundary: boundaryDensity,
	}
}

// Dimensions returns the bin grid's column and row counts.
func (g *Grid) Dimensions() (cols, rows int) { return g.cols, g.rows }

// BinSize returns the configured bin extent.
func (g *Grid) BinSize() design.Size { return g.binSize }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// At returns bin (x,y), or a synthetic boundary bin — density
// g.boundary, zero velocity — if (x,y) lies outside the grid.
func (g *Grid) At(x, y int) Bin {
	if !g.inBounds(x, y) {
		return Bin{Density: g.boundary}
	}
	return g.bins[y*g.cols+x]
}

func (g *Grid) set(x, y int, b Bin) {
	if !g.inBounds(x, y) {
		return
	}
	g.bins[y*g.cols+x] = b
}

func (g *Grid) addDensity(x, y int, delta float64) {
	if !g.inBounds(x, y) {
		return
	}
	g.bins[y*g.cols+x].Density += delta
}

// binArea returns the area of one bin in nm^2.
func (g *Grid) binArea() float64 { return float64(g.binSize.W) * float64(g.binSize.H) }

// BinCoord returns the fractional bin-space coordinate of pos, used by
// the bilinear velocity interpolation during advection (spec §4.5).
func (g *Grid) BinCoord(pos design.Coord) (fx, fy float64) {
	fx = float64(pos.X-g.rect.LL.X) / float64(g.binSize.W)
	fy = float64(pos.Y-g.rect.LL.Y) / float64(g.binSize.H)
	return fx, fy
}

// clearDensities zeroes every bin's density field, leaving velocity
// untouched (it is recomputed wholesale every iteration anyway).
func (g *Grid) clearDensities() {
	for i := range g.bins {
		g.bins[i].Density = 0
	}
}

// rectOverlapArea returns the overlap area (nm^2) between two
// axis-aligned rectangles given as lower-left/upper-right pairs.
func rectOverlapArea(aLL, aUR, bLL, bUR design.Coord) float64 {
	dx := min64f(aUR.X, bUR.X) - max64f(aLL.X, bLL.X)
	dy := min64f(aUR.Y, bUR.Y) - max64f(aLL.Y, bLL.Y)
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return float64(dx) * float64(dy)
}

func min64f(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64f(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
