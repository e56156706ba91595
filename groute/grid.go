package groute

import (
	"math"

	"github.com/lunapnr/pnrcore/design"
)

// Direction is a single grid step. A GCell's Pred direction is the way
// to step from that cell back toward the search's source, so
// backtracking a route just follows Pred until it reaches the source.
type Direction int

const (
	DirUndefined Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

func (d Direction) opposite() Direction {
	switch d {
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirEast:
		return DirWest
	case DirWest:
		return DirEast
	default:
		return DirUndefined
	}
}

func step(p design.Coord, d Direction) design.Coord {
	switch d {
	case DirNorth:
		return design.Coord{X: p.X, Y: p.Y + 1}
	case DirSouth:
		return design.Coord{X: p.X, Y: p.Y - 1}
	case DirEast:
		return design.Coord{X: p.X + 1, Y: p.Y}
	case DirWest:
		return design.Coord{X: p.X - 1, Y: p.Y}
	default:
		return p
	}
}

// cellFlag is a bitmask of transient per-cell search state, matching
// the original GCell's packed flags field.
type cellFlag uint8

const (
	flagSource cellFlag = 1 << iota
	flagTarget
	flagReached
	flagBlocked
	flagMarked
	flagExtracted
	flagInvalid
)

// GCell is one cell of the global-routing grid: a track-capacity
// counter plus the transient cost/predecessor/flags the maze search
// writes during a route.
type GCell struct {
	Capacity int64
	Cost     int64
	Pred     Direction
	flags    cellFlag
}

func (c *GCell) has(f cellFlag) bool  { return c.flags&f != 0 }
func (c *GCell) set(f cellFlag)       { c.flags |= f }
func (c *GCell) clear(f cellFlag)     { c.flags &^= f }
func (c *GCell) IsSource() bool       { return c.has(flagSource) }
func (c *GCell) SetSource()           { c.set(flagSource) }
func (c *GCell) ClearSource()         { c.clear(flagSource) }
func (c *GCell) IsTarget() bool       { return c.has(flagTarget) }
func (c *GCell) SetTarget()           { c.set(flagTarget) }
func (c *GCell) ClearTarget()         { c.clear(flagTarget) }
func (c *GCell) IsReached() bool      { return c.has(flagReached) }
func (c *GCell) SetReached()          { c.set(flagReached) }
func (c *GCell) ClearReached()        { c.clear(flagReached) }
func (c *GCell) IsBlocked() bool      { return c.has(flagBlocked) }
func (c *GCell) SetBlocked()          { c.set(flagBlocked) }
func (c *GCell) IsMarked() bool       { return c.has(flagMarked) }
func (c *GCell) SetMark()             { c.set(flagMarked) }
func (c *GCell) IsExtracted() bool    { return c.has(flagExtracted) }
func (c *GCell) SetExtracted()        { c.set(flagExtracted) }
func (c *GCell) IsInvalid() bool      { return c.has(flagInvalid) }
func (c *GCell) setInvalid()          { c.set(flagInvalid) }
func (c *GCell) resetFlags()          { c.flags = 0 }

// Grid is the routing plane: a width x height array of GCells, each
// covering cellSize nanometers of the floorplan.
type Grid struct {
	width, height int64
	cellSize      design.Size
	cells         []GCell
	maxCapacity   int64
	invalid       GCell
}

// NewGrid allocates a cleared width x height grid of cellSize cells.
func NewGrid(width, height int64, cellSize design.Size) *Grid {
	g := &Grid{width: width, height: height, cellSize: cellSize, cells: make([]GCell, width*height)}
	g.clearGrid()
	return g
}

func (g *Grid) Width() int64  { return g.width }
func (g *Grid) Height() int64 { return g.height }

// SetMaxCapacity sets the per-cell track-capacity ceiling.
func (g *Grid) SetMaxCapacity(c int64) { g.maxCapacity = c }

// MaxCapacity returns the per-cell track-capacity ceiling.
func (g *Grid) MaxCapacity() int64 { return g.maxCapacity }

// ToGridCoord converts a floorplan coordinate (nanometers) into a grid
// coordinate (cells).
func (g *Grid) ToGridCoord(p design.Coord) design.Coord {
	return design.Coord{X: p.X / g.cellSize.W, Y: p.Y / g.cellSize.H}
}

// IsValid reports whether loc lies within the grid.
func (g *Grid) IsValid(loc design.Coord) bool {
	return loc.X >= 0 && loc.X < g.width && loc.Y >= 0 && loc.Y < g.height
}

// At returns the cell at loc, or a shared invalid sentinel cell if loc
// is out of bounds.
func (g *Grid) At(loc design.Coord) *GCell {
	if !g.IsValid(loc) {
		g.invalid.setInvalid()
		return &g.invalid
	}
	return &g.cells[loc.Y*g.width+loc.X]
}

func (g *Grid) clearGrid() {
	for i := range g.cells {
		g.cells[i] = GCell{Cost: math.MaxInt64}
	}
}

// ClearReachedAndResetCost clears every cell's reached flag and cost,
// leaving capacity and other flags (blockages) intact.
func (g *Grid) ClearReachedAndResetCost() {
	for i := range g.cells {
		g.cells[i].ClearReached()
		g.cells[i].Cost = math.MaxInt64
	}
}

// ClearAllFlagsAndResetCost clears every transient flag and cost ahead
// of routing a new net, leaving capacity counters intact.
func (g *Grid) ClearAllFlagsAndResetCost() {
	for i := range g.cells {
		g.cells[i].resetFlags()
		g.cells[i].Cost = math.MaxInt64
	}
}
