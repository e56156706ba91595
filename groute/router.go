package groute

import (
	"errors"
	"fmt"

	"github.com/lunapnr/pnrcore/config"
	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
	"github.com/lunapnr/pnrcore/rmst"
)

var (
	// ErrNoGrid is returned when a route is attempted before CreateGrid.
	ErrNoGrid = errors.New("groute: grid not created")
	// ErrInvalidCoord is returned when a terminal falls outside the grid.
	ErrInvalidCoord = errors.New("groute: coordinate outside grid")
	// ErrNoPath is returned when the maze search exhausts the wavefront
	// without reaching the target.
	ErrNoPath = errors.New("groute: no path found")
)

// Segment is one straight run of grid cells in a routed net, expressed
// in grid coordinates.
type Segment struct {
	Start  design.Coord
	Length int64
	Dir    Direction
}

// Router owns the routing grid and performs per-net maze routing.
type Router struct {
	grid        *Grid
	bendPenalty int64
}

// New returns a Router configured with cfg's bend penalty.
func New(cfg config.Config) *Router {
	return &Router{bendPenalty: cfg.RouterBendPenalty}
}

// CreateGrid allocates a fresh width x height grid of cellSize cells
// with the given per-cell track capacity, discarding any prior grid.
func (r *Router) CreateGrid(width, height int64, cellSize design.Size, cellCapacity int64) {
	r.grid = NewGrid(width, height, cellSize)
	r.grid.SetMaxCapacity(cellCapacity)
}

// Grid returns the router's grid, or nil if CreateGrid hasn't run yet.
func (r *Router) Grid() *Grid { return r.grid }

// SetBlockage marks the grid cell under floorplan coordinate p blocked.
func (r *Router) SetBlockage(p design.Coord) {
	if r.grid == nil {
		return
	}
	r.grid.At(r.grid.ToGridCoord(p)).SetBlocked()
}

// ClearGridForNewRoute clears search flags and cost ahead of routing
// the next net; capacity counters from prior nets remain intact.
func (r *Router) ClearGridForNewRoute() {
	if r.grid != nil {
		r.grid.ClearAllFlagsAndResetCost()
	}
}

// RouteNet builds a spanning tree over nodes (floorplan coordinates)
// with rmst.Prim and connects each tree edge with a maze search,
// returning every segment routed and updating grid capacity counters.
func (r *Router) RouteNet(nodes []design.Coord, name string) ([]Segment, error) {
	if r.grid == nil {
		return nil, ErrNoGrid
	}
	if len(nodes) < 2 {
		return nil, nil
	}

	tree := rmst.Prim(nodes)
	if len(tree) != len(nodes) {
		return nil, fmt.Errorf("groute: net %q: spanning tree covers %d of %d terminals", name, len(tree), len(nodes))
	}

	r.grid.ClearAllFlagsAndResetCost()

	var all []Segment
	for _, node := range tree {
		for _, edge := range node.Edges {
			segs, err := r.routeTwoPoint(node.Pos, edge.Pos)
			if err != nil {
				return nil, fmt.Errorf("groute: net %q: %w", name, err)
			}
			all = append(all, segs...)
		}
	}

	r.updateCapacity(all)
	logging.Debugf("groute: routed net %q: %d terminals, %d segments", name, len(nodes), len(all))
	return all, nil
}

// routeTwoPoint runs the best-first maze search between two floorplan
// coordinates and returns the backtraced segment chain.
func (r *Router) routeTwoPoint(p1, p2 design.Coord) ([]Segment, error) {
	source := r.grid.ToGridCoord(p1)
	target := r.grid.ToGridCoord(p2)

	if !r.grid.IsValid(source) || !r.grid.IsValid(target) {
		return nil, ErrInvalidCoord
	}

	if source == target {
		return []Segment{{Start: source, Length: 0, Dir: DirEast}}, nil
	}

	wf := &Wavefront{}
	wf.Push(WavefrontItem{Pos: source, PathCost: 0, Pred: DirUndefined})

	r.grid.At(source).SetMark()
	r.grid.At(source).SetSource()
	r.grid.At(source).ClearTarget()
	r.grid.At(source).SetReached()
	r.grid.At(target).SetTarget()

	for {
		if wf.Empty() {
			return nil, ErrNoPath
		}

		item := wf.Pop()
		cell := r.grid.At(item.Pos)
		cell.SetReached()

		if cell.Cost <= item.PathCost {
			continue
		}
		cell.Pred = item.Pred
		cell.Cost = item.PathCost

		if item.Pos == target {
			return r.backtrack(source, target), nil
		}

		for _, d := range [...]Direction{DirNorth, DirSouth, DirEast, DirWest} {
			next := step(item.Pos, d)
			if !r.grid.IsValid(next) {
				continue
			}
			cost, ok := r.costTo(item, next, target, d.opposite())
			if !ok {
				continue
			}
			r.tryPush(wf, next, cost, d.opposite())
		}
	}
}

// costTo is the directed maze-search cost function: a unit step, plus
// a bend penalty on direction change, plus a Manhattan lower bound to
// the destination that biases the search toward it (spec §4.8).
func (r *Router) costTo(from WavefrontItem, to, destination design.Coord, predAtTo Direction) (int64, bool) {
	cell := r.grid.At(to)
	if cell.Capacity >= r.grid.MaxCapacity() {
		return 0, false
	}

	cost := int64(1)
	if from.Pred != predAtTo && from.Pred != DirUndefined {
		cost += r.bendPenalty
	}

	return cost + from.PathCost + manhattan(to, destination), true
}

func (r *Router) tryPush(wf *Wavefront, pos design.Coord, cost int64, pred Direction) {
	cell := r.grid.At(pos)
	if cell.IsReached() || cell.IsBlocked() {
		return
	}
	wf.Push(WavefrontItem{Pos: pos, PathCost: cost, Pred: pred})
}

// backtrack follows Pred from target back to source, grouping runs of
// the same direction into Segments.
func (r *Router) backtrack(source, target design.Coord) []Segment {
	r.grid.ClearReachedAndResetCost()
	r.grid.At(source).ClearSource()
	r.grid.At(target).ClearTarget()

	pos := target
	var segments []Segment
	cur := Segment{Start: pos, Dir: DirUndefined}

	for {
		cell := r.grid.At(pos)
		r.grid.At(pos).SetMark()

		if pos == source || cell.Pred == DirUndefined {
			break
		}

		if cur.Dir == DirUndefined {
			cur.Dir = cell.Pred
			cur.Length = 1
		} else if cell.Pred != cur.Dir {
			segments = append(segments, cur)
			cur = Segment{Start: pos, Dir: cell.Pred, Length: 1}
		} else {
			cur.Length++
		}

		pos = step(pos, cell.Pred)
	}

	segments = append(segments, cur)
	return segments
}

func (r *Router) updateCapacity(segments []Segment) {
	for _, seg := range segments {
		pos := seg.Start
		remaining := seg.Length
		for remaining > 0 {
			if !r.grid.IsValid(pos) {
				return
			}
			cell := r.grid.At(pos)
			if !cell.IsExtracted() {
				cell.SetExtracted()
				cell.Capacity++
			}
			remaining--
			pos = step(pos, seg.Dir)
		}
	}
}

func manhattan(a, b design.Coord) int64 {
	return abs64(a.X-b.X) + abs64(a.Y-b.Y)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
