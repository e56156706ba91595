// SPDX-License-Identifier: MIT
package diffusion

import (
	"errors"
	"fmt"

	"github.com/lunapnr/pnrcore/config"
	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
)

// ErrNoMovableInstances is returned when a module has no non-fixed
// InstanceCell to size the bin grid from.
var ErrNoMovableInstances = errors.New("diffusion: module has no movable instances")

func roundUp(v, multiple int64) int64 {
	if multiple <= 0 {
		return v
	}
	return ((v + multiple - 1) / multiple) * multiple
}

func averageMovableSize(mod *design.Module, des *design.Design) (design.Size, error) {
	var sumW, sumH int64
	var n int64
	for _, key := range mod.Instances() {
		ins := mod.Instance(key)
		if ins.Kind != design.InstanceCell || ins.State == design.PlacedAndFixed {
			continue
		}
		cell := des.Cell(ins.Archetype)
		if cell == nil {
			continue
		}
		sumW += cell.Size.W
		sumH += cell.Size.H
		n++
	}
	if n == 0 {
		return design.Size{}, ErrNoMovableInstances
	}
	return design.Size{W: sumW / n, H: sumH / n}, nil
}

// Diffuser removes placement overlap by repeatedly rebuilding a
// density map over the placement rectangle and advecting movable
// instances down the resulting velocity field (spec §4.5).
type Diffuser struct {
	mod  *design.Module
	des  *design.Design
	grid *Grid
	cfg  config.Config
}

// New builds a Diffuser for mod's movable instances within rect. The
// bin size is the average movable instance size scaled by
// cfg.DiffusionBinMultiplier, rounded up to a multiple of siteSize.
func New(mod *design.Module, des *design.Design, rect design.Rect, siteSize design.Size, cfg config.Config) (*Diffuser, error) {
	avg, err := averageMovableSize(mod, des)
	if err != nil {
		return nil, fmt.Errorf("diffusion.New: %w", err)
	}

	mult := cfg.DiffusionBinMultiplier
	if mult <= 0 {
		mult = 1
	}
	binSize := design.Size{
		W: roundUp(int64(float64(avg.W)*mult), siteSize.W),
		H: roundUp(int64(float64(avg.H)*mult), siteSize.H),
	}
	if binSize.W <= 0 {
		binSize.W = siteSize.W
	}
	if binSize.H <= 0 {
		binSize.H = siteSize.H
	}

	grid := NewGrid(rect, binSize, cfg.DiffusionBoundaryDensity)
	return &Diffuser{mod: mod, des: des, grid: grid, cfg: cfg}, nil
}

// Grid exposes the underlying bin grid (read-only use: inspection and tests).
func (d *Diffuser) Grid() *Grid { return d.grid }

// Result reports how a Run terminated.
type Result struct {
	Iterations int
	Converged  bool
	MaxDensity float64
}

// Run executes the diffuse/advect loop until every bin is at or below
// the target density or cfg.DiffusionMaxIter is reached. It never
// returns an error: a non-converged result is reported via Result,
// not a failure (spec §4.5: "never raises").
func (d *Diffuser) Run() Result {
	maxIter := d.cfg.DiffusionMaxIter
	if maxIter <= 0 {
		maxIter = 1
	}

	var maxDensity float64
	iter := 0
	for ; iter < maxIter; iter++ {
		d.rebuildDensity()
		maxDensity = d.maxDensity()
		if maxDensity <= d.cfg.DiffusionTargetDensity {
			return Result{Iterations: iter, Converged: true, MaxDensity: maxDensity}
		}

		d.computeVelocity()
		d.advect(d.cfg.DiffusionDeltaT)
	}

	logging.Warnf("diffusion: target density %.3f not reached after %d iterations (best %.3f)",
		d.cfg.DiffusionTargetDensity, iter, maxDensity)
	return Result{Iterations: iter, Converged: false, MaxDensity: maxDensity}
}

// rebuildDensity recomputes every bin's density from the module's
// current movable-instance positions (spec §4.5 density computation).
// The original diffuser keeps a cheaper "propagated" density path
// separate from this rescan and only rescans every few iterations; its
// propagation step was never implemented upstream (Diffusion::step is
// an empty stub), so this module always rescans — a grid this size is
// cheap enough per iteration that the distinction buys nothing real.
func (d *Diffuser) rebuildDensity() {
	d.grid.clearDensities()
	binArea := d.grid.binArea()
	if binArea <= 0 {
		return
	}

	for _, key := range d.mod.Instances() {
		ins := d.mod.Instance(key)
		if ins.Kind != design.InstanceCell || ins.State == design.PlacedAndFixed {
			continue
		}
		cell := d.des.Cell(ins.Archetype)
		if cell == nil {
			continue
		}

		ll := ins.Pos
		ur := design.Coord{X: ll.X + cell.Size.W, Y: ll.Y + cell.Size.H}

		llBin := d.grid.binIndexFloor(ll)
		urBin := d.grid.binIndexFloor(design.Coord{X: ur.X - 1, Y: ur.Y - 1})

		for y := llBin.y; y <= urBin.y; y++ {
			for x := llBin.x; x <= urBin.x; x++ {
				binLL := design.Coord{
					X: d.grid.rect.LL.X + int64(x)*d.grid.binSize.W,
					Y: d.grid.rect.LL.Y + int64(y)*d.grid.binSize.H,
				}
				binUR := design.Coord{X: binLL.X + d.grid.binSize.W, Y: binLL.Y + d.grid.binSize.H}
				overlap := rectOverlapArea(binLL, binUR, ll, ur)
				if overlap > 0 {
					d.grid.addDensity(x, y, overlap/binArea)
				}
			}
		}
	}
}

type binIndex struct{ x, y int }

func (g *Grid) binIndexFloor(pos design.Coord) binIndex {
	x := int((pos.X - g.rect.LL.X) / g.binSize.W)
	y := int((pos.Y - g.rect.LL.Y) / g.binSize.H)
	return binIndex{x: x, y: y}
}

func (d *Diffuser) maxDensity() float64 {
	var m float64
	for _, b := range d.grid.bins {
		if b.Density > m {
			m = b.Density
		}
	}
	return m
}

// computeVelocity derives each bin's velocity from a centered density
// gradient (spec §4.5): low density "downhill" pulls cells toward it.
// Numerators below the 0.1 density threshold are treated as zero, and
// border bins (reflecting walls) get zero velocity.
func (d *Diffuser) computeVelocity() {
	const densityFloor = 0.1
	cols, rows := d.grid.cols, d.grid.rows

	next := make([]Bin, len(d.grid.bins))
	copy(next, d.grid.bins)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			center := d.grid.At(x, y)
			if center.Density < densityFloor {
				idx := y*cols + x
				next[idx].Vx = 0
				next[idx].Vy = 0
				continue
			}

			left := d.grid.At(x-1, y)
			right := d.grid.At(x+1, y)
			down := d.grid.At(x, y-1)
			up := d.grid.At(x, y+1)

			vx := (left.Density - right.Density) / (2 * center.Density)
			vy := (down.Density - up.Density) / (2 * center.Density)

			idx := y*cols + x
			next[idx].Vx = vx
			next[idx].Vy = vy
		}
	}

	d.grid.bins = next
}

// advect moves every movable instance by dt * v * binSize, where v is
// the bilinearly-interpolated velocity at the instance's fractional
// bin coordinate (spec §4.5).
func (d *Diffuser) advect(dt float64) {
	for _, key := range d.mod.Instances() {
		ins := d.mod.Instance(key)
		if ins.Kind != design.InstanceCell || ins.State == design.PlacedAndFixed {
			continue
		}
		cell := d.des.Cell(ins.Archetype)
		if cell == nil {
			continue
		}

		center := design.Coord{X: ins.Pos.X + cell.Size.W/2, Y: ins.Pos.Y + cell.Size.H/2}
		vx, vy := d.interpolateVelocity(center)

		dx := int64(dt * vx * float64(d.grid.binSize.W))
		dy := int64(dt * vy * float64(d.grid.binSize.H))

		ins.Pos = design.Coord{X: ins.Pos.X + dx, Y: ins.Pos.Y + dy}
	}
}

// interpolateVelocity returns the bilinearly-interpolated velocity at
// pos from the four surrounding bin centers.
func (d *Diffuser) interpolateVelocity(pos design.Coord) (vx, vy float64) {
	fx, fy := d.grid.BinCoord(pos)
	fx -= 0.5
	fy -= 0.5

	x0 := int(floorf(fx))
	y0 := int(floorf(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	b00 := d.grid.At(x0, y0)
	b10 := d.grid.At(x0+1, y0)
	b01 := d.grid.At(x0, y0+1)
	b11 := d.grid.At(x0+1, y0+1)

	vx = lerp(lerp(b00.Vx, b10.Vx, tx), lerp(b01.Vx, b11.Vx, tx), ty)
	vy = lerp(lerp(b00.Vy, b10.Vy, tx), lerp(b01.Vy, b11.Vy, tx), ty)
	return vx, vy
}

func floorf(v float64) float64 {
	i := int64(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return float64(i)
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }
