// SPDX-License-Identifier: MIT
package design

// Coord is an integer nanometer coordinate, matching the original
// tool's int64-nanometer fixed-point convention.
type Coord struct {
	X, Y int64
}

// Add returns the component-wise sum of c and o.
func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y} }

// Sub returns the component-wise difference of c and o.
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y} }

// Size is a width/height extent in nanometers.
type Size struct {
	W, H int64
}

// Rect is an axis-aligned rectangle given by its lower-left corner and size.
type Rect struct {
	LL   Coord
	Size Size
}

// UR returns the upper-right corner of the rectangle.
func (r Rect) UR() Coord { return Coord{r.LL.X + r.Size.W, r.LL.Y + r.Size.H} }

// Overlap returns the overlap area (in nm^2) between r and o, or 0 if disjoint.
func (r Rect) Overlap(o Rect) int64 {
	rur, our := r.UR(), o.UR()
	dx := min64(rur.X, our.X) - max64(r.LL.X, o.LL.X)
	dy := min64(rur.Y, our.Y) - max64(r.LL.Y, o.LL.Y)
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return dx * dy
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// LayerKind classifies a technology Layer.
type LayerKind int

const (
	LayerRouting LayerKind = iota
	LayerCut
	LayerMasterslice
	LayerOverlap
)

// LayerDirection is the preferred routing direction of a routing layer.
type LayerDirection int

const (
	DirNone LayerDirection = iota
	DirHorizontal
	DirVertical
)

// Layer describes one technology layer.
type Layer struct {
	Name      string
	Kind      LayerKind
	Direction LayerDirection
	PitchX    int64
	PitchY    int64
	Width     int64
	Spacing   int64
}

// SiteSymmetry encodes the placement-symmetry flags a Site allows.
type SiteSymmetry struct {
	X, Y, R90 bool
}

// Site is the minimum legal placement grid unit.
type Site struct {
	Name      string
	Size      Size
	Class     string
	Symmetry  SiteSymmetry
}

// PinDirection classifies a library pin.
type PinDirection int

const (
	PinIn PinDirection = iota
	PinOut
	PinIO
	PinPower
	PinGround
)

// PinInfo is a library-defined pin on a Cell.
type PinInfo struct {
	Name         string
	Direction    PinDirection
	Capacitance  float64
	MaxCap       float64
	IsClock      bool
	Function     string
	TriState     string
	Offset       Coord
}

// Cell is a standard-cell library element.
type Cell struct {
	Name     string
	Size     Size
	Area     float64
	Pins     []PinInfo
	Class    string
	Symmetry SiteSymmetry
}

// PinByName returns the PinKey (index) of the named pin, or NoKey.
func (c *Cell) PinByName(name string) PinKey {
	for i := range c.Pins {
		if c.Pins[i].Name == name {
			return PinKey(i)
		}
	}
	return NoKey
}

// Orientation is one of the eight legal cell placement transforms.
type Orientation int

const (
	R0 Orientation = iota
	R90
	R180
	R270
	MX
	MY
	MX90
	MY90
)

// PlacementState tracks where an Instance is in the placement lifecycle.
type PlacementState int

const (
	Unplaced PlacementState = iota
	Placed
	PlacedAndFixed
)

// InstanceKind tags the variant of an Instance in place of a virtual
// subclass hierarchy (spec §9: "tagged variant ... plus common fields").
type InstanceKind int

const (
	InstanceCell InstanceKind = iota
	InstancePin
	InstanceModule
)

// PinConnection binds one instance pin to a net.
type PinConnection struct {
	Pin PinKey
	Net NetKey
}

// Instance is a placement of a Cell (or a top-level pin, or a module
// instantiation) in a netlist.
type Instance struct {
	Name        string
	Archetype   CellKey
	Pos         Coord // lower-left
	Orientation Orientation
	State       PlacementState
	Kind        InstanceKind
	Weight      float64

	// pinNets maps PinKey -> NetKey for every bound pin.
	pinNets map[PinKey]NetKey
}

// Net returns the NetKey bound to pin, or NoKey if unbound.
func (ins *Instance) Net(pin PinKey) NetKey {
	if ins.pinNets == nil {
		return NoKey
	}
	if n, ok := ins.pinNets[pin]; ok {
		return n
	}
	return NoKey
}

// PinNets returns a copy of the instance's pin->net bindings.
func (ins *Instance) PinNets() map[PinKey]NetKey {
	out := make(map[PinKey]NetKey, len(ins.pinNets))
	for k, v := range ins.pinNets {
		out[k] = v
	}
	return out
}

// Connection is one (instance, pin) endpoint of a Net.
type Connection struct {
	Instance InstanceKey
	Pin      PinKey
}

// Net is a set of instance pins that must be electrically connected.
type Net struct {
	Name        string
	IsClock     bool
	Weight      float64
	Connections []Connection
}

// Degenerate reports whether the net has fewer than two connections
// (spec §3: "at least two connections or it is degenerate").
func (n *Net) Degenerate() bool { return len(n.Connections) < 2 }

// Region is a rectangular sub-area of the floorplan.
type Region struct {
	Name          string
	Rect          Rect
	HaloX, HaloY  int64
	SiteName      string
	Rows          []RowKey
}

// PlacementRect returns the region rectangle shrunk by its halo margins.
func (r *Region) PlacementRect() Rect {
	return Rect{
		LL:   Coord{r.Rect.LL.X + r.HaloX, r.Rect.LL.Y + r.HaloY},
		Size: Size{r.Rect.Size.W - 2*r.HaloX, r.Rect.Size.H - 2*r.HaloY},
	}
}

// Row is one cell-height strip within a Region.
type Row struct {
	Region   RegionKey
	Rect     Rect
	Flipped  bool
	SiteKind string
}
