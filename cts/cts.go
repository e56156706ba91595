package cts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
)

var (
	// ErrNetNotFound is returned when the given net key has no net.
	ErrNetNotFound = errors.New("cts: net not found")
	// ErrNoDriver is returned when the clock net has no output-direction
	// connection to anchor the tree at.
	ErrNoDriver = errors.New("cts: clock net has no driver pin")
	// ErrNoSinks is returned when the clock net has no input-direction
	// connections to buffer.
	ErrNoSinks = errors.New("cts: clock net has no sinks")
)

// BufferSpec describes the cell used to buffer the clock tree.
type BufferSpec struct {
	Cell      design.CellKey
	InputPin  design.PinKey
	OutputPin design.PinKey
	InputCap  float64
}

// Result summarizes a completed synthesis pass.
type Result struct {
	BuffersInserted  int
	SinksConnected   int
	TotalCapacitance float64
}

type sinkTerminal struct {
	Instance design.InstanceKey
	Pin      design.PinKey
	Pos      design.Coord
	Cap      float64
}

// node is one cluster of the recursive mean-and-median split. A leaf
// node (children[0] == nil) holds its sinks directly; an internal node
// holds two child clusters. insert places one buffer at pos for every
// node, leaf or internal.
type node struct {
	pos      design.Coord
	cap      float64
	sinks    []sinkTerminal
	children [2]*node
}

// Synthesize buffers netKey's sinks so that no buffered sub-tree
// exceeds maxCap, rewiring the net so every sink is ultimately driven
// by an inserted buffer (or, if the whole net already fits under
// maxCap, left on the original net unbuffered).
func Synthesize(mod *design.Module, des *design.Design, netKey design.NetKey, buf BufferSpec, maxCap float64) (Result, error) {
	net := mod.Net(netKey)
	if net == nil {
		return Result{}, ErrNetNotFound
	}

	sinks, err := classify(mod, des, net)
	if err != nil {
		return Result{}, err
	}

	root := build(sinks, maxCap)

	for _, s := range sinks {
		if err := mod.Disconnect(s.Instance, s.Pin); err != nil {
			return Result{}, fmt.Errorf("cts: disconnecting original sink: %w", err)
		}
	}

	result := Result{TotalCapacitance: root.cap}
	counter := 0

	if root.children[0] == nil {
		// whole net fits under maxCap: nothing to buffer, reconnect
		// sinks directly to the original clock net.
		for _, s := range sinks {
			if err := mod.Connect(s.Instance, s.Pin, netKey); err != nil {
				return Result{}, fmt.Errorf("cts: reconnecting sink: %w", err)
			}
		}
		net.IsClock = true
		result.SinksConnected = len(sinks)
		logging.Infof("cts: net %q fits under C_max=%.3g with 0 buffers (%d sinks)", net.Name, maxCap, len(sinks))
		return result, nil
	}

	top, err := insert(root, mod, buf, &counter)
	if err != nil {
		return Result{}, err
	}
	result.BuffersInserted = counter
	result.SinksConnected = len(sinks)

	// the top buffer's input hangs off the original clock net,
	// alongside whatever was already driving it.
	if err := mod.Connect(top.instance, buf.InputPin, netKey); err != nil {
		return Result{}, fmt.Errorf("cts: connecting top buffer to driver net: %w", err)
	}
	net.IsClock = true

	logging.Infof("cts: net %q buffered: %d buffer(s) for %d sinks (top input cap %.3g)",
		net.Name, result.BuffersInserted, result.SinksConnected, buf.InputCap)

	return result, nil
}

func classify(mod *design.Module, des *design.Design, net *design.Net) ([]sinkTerminal, error) {
	haveDriver := false
	var sinks []sinkTerminal

	for _, c := range net.Connections {
		ins := mod.Instance(c.Instance)
		if ins == nil {
			continue
		}
		cell := des.Cell(ins.Archetype)
		var dir design.PinDirection
		var capv float64
		var offset design.Coord
		if cell != nil && int(c.Pin) < len(cell.Pins) {
			pin := cell.Pins[c.Pin]
			dir = pin.Direction
			capv = pin.Capacitance
			offset = pin.Offset
		}

		if dir == design.PinOut || dir == design.PinIO {
			haveDriver = true
			continue
		}

		sinks = append(sinks, sinkTerminal{
			Instance: c.Instance,
			Pin:      c.Pin,
			Pos:      ins.Pos.Add(offset),
			Cap:      capv,
		})
	}

	if !haveDriver {
		return nil, ErrNoDriver
	}
	if len(sinks) == 0 {
		return nil, ErrNoSinks
	}
	return sinks, nil
}

func sumCap(sinks []sinkTerminal) float64 {
	var total float64
	for _, s := range sinks {
		total += s.Cap
	}
	return total
}

func centroid(sinks []sinkTerminal) design.Coord {
	var sx, sy int64
	for _, s := range sinks {
		sx += s.Pos.X
		sy += s.Pos.Y
	}
	n := int64(len(sinks))
	if n == 0 {
		return design.Coord{}
	}
	return design.Coord{X: sx / n, Y: sy / n}
}

// build recursively clusters sinks per spec §4.9: a cluster under
// maxCap stops; an oversized cluster splits at the median of its
// longer bounding-box axis.
func build(sinks []sinkTerminal, maxCap float64) *node {
	total := sumCap(sinks)
	if total <= maxCap || len(sinks) < 2 {
		return &node{pos: centroid(sinks), cap: total, sinks: sinks}
	}

	left, right := splitByLongerAxis(sinks)
	return &node{
		pos:      centroid(sinks),
		children: [2]*node{build(left, maxCap), build(right, maxCap)},
	}
}

func splitByLongerAxis(sinks []sinkTerminal) ([]sinkTerminal, []sinkTerminal) {
	var minX, maxX, minY, maxY int64
	minX, maxX = sinks[0].Pos.X, sinks[0].Pos.X
	minY, maxY = sinks[0].Pos.Y, sinks[0].Pos.Y
	for _, s := range sinks[1:] {
		minX, maxX = min64(minX, s.Pos.X), max64(maxX, s.Pos.X)
		minY, maxY = min64(minY, s.Pos.Y), max64(maxY, s.Pos.Y)
	}

	ordered := make([]sinkTerminal, len(sinks))
	copy(ordered, sinks)

	if (maxX - minX) >= (maxY - minY) {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Pos.X < ordered[j].Pos.X })
	} else {
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Pos.Y < ordered[j].Pos.Y })
	}

	mid := len(ordered) / 2
	left := make([]sinkTerminal, mid)
	copy(left, ordered[:mid])
	right := make([]sinkTerminal, len(ordered)-mid)
	copy(right, ordered[mid:])
	return left, right
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

type insertedSubtree struct {
	net      design.NetKey
	instance design.InstanceKey
}

// insert walks the cluster tree bottom-up, installing exactly one
// buffer per node (leaf or internal). A leaf buffer drives its raw
// sinks directly (within maxCap, by construction of build); an
// internal buffer drives only its two children's input pins, so its
// own downstream load is two buffer input capacitances rather than
// the full sub-tree's sink sum (spec §4.9's "no buffer's downstream
// capacitance exceeds C_max" invariant).
func insert(n *node, mod *design.Module, buf BufferSpec, counter *int) (insertedSubtree, error) {
	name := fmt.Sprintf("cts_buf_%d", *counter)
	*counter++

	instKey, err := mod.AddInstance(name, buf.Cell, design.InstanceCell)
	if err != nil {
		return insertedSubtree{}, fmt.Errorf("cts: inserting buffer: %w", err)
	}
	inst := mod.Instance(instKey)
	inst.Pos = n.pos

	netKey, err := mod.AddNet(name+"_net", 1.0)
	if err != nil {
		return insertedSubtree{}, fmt.Errorf("cts: creating buffer net: %w", err)
	}
	if err := mod.Connect(instKey, buf.OutputPin, netKey); err != nil {
		return insertedSubtree{}, fmt.Errorf("cts: connecting buffer output: %w", err)
	}

	if n.children[0] == nil {
		for _, sink := range n.sinks {
			if err := mod.Connect(sink.Instance, sink.Pin, netKey); err != nil {
				return insertedSubtree{}, fmt.Errorf("cts: connecting sink: %w", err)
			}
		}
		n.cap = buf.InputCap
		return insertedSubtree{net: netKey, instance: instKey}, nil
	}

	for _, child := range n.children {
		cr, err := insert(child, mod, buf, counter)
		if err != nil {
			return insertedSubtree{}, err
		}
		if err := mod.Connect(cr.instance, buf.InputPin, netKey); err != nil {
			return insertedSubtree{}, fmt.Errorf("cts: connecting child buffer: %w", err)
		}
	}

	n.cap = buf.InputCap
	return insertedSubtree{net: netKey, instance: instKey}, nil
}
