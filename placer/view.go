// SPDX-License-Identifier: MIT
package placer

import (
	"errors"
	"fmt"

	"github.com/lunapnr/pnrcore/design"
)

// ErrPinInstanceNotFixed is the invariant violation spec §4.3's contract
// and §7's error taxonomy both call out: every terminal (pin or module
// boundary) instance must be placed-and-fixed before the placer runs.
var ErrPinInstanceNotFixed = errors.New("placer: pin/module instance is not placed-and-fixed")

// Node is the placement database view (spec §4.2): a dense,
// 0-indexed record of one instance's center, size, fixed-ness, and
// pull weight. Index order matches design.Module.Instances().
type Node struct {
	Instance design.InstanceKey
	Center   design.Coord
	Size     design.Size
	Fixed    bool
	Weight   float64
}

// BuildNodes produces the dense Node view over every instance in mod,
// and an index from InstanceKey back into the returned slice.
//
// Returns ErrPinInstanceNotFixed if any terminal (InstancePin or
// InstanceModule) instance is not already PlacedAndFixed — the
// quadratic placer's contract assumes the netlist boundary is pinned
// down before it runs.
func BuildNodes(mod *design.Module, des *design.Design) ([]Node, map[design.InstanceKey]int, error) {
	instKeys := mod.Instances()
	nodes := make([]Node, 0, len(instKeys))
	index := make(map[design.InstanceKey]int, len(instKeys))

	for _, key := range instKeys {
		ins := mod.Instance(key)
		if (ins.Kind == design.InstancePin || ins.Kind == design.InstanceModule) &&
			ins.State != design.PlacedAndFixed {
			return nil, nil, fmt.Errorf("BuildNodes: instance %q: %w", ins.Name, ErrPinInstanceNotFixed)
		}

		size := design.Size{}
		if ins.Kind == design.InstanceCell {
			if cell := des.Cell(ins.Archetype); cell != nil {
				size = cell.Size
			}
		}

		center := design.Coord{
			X: ins.Pos.X + size.W/2,
			Y: ins.Pos.Y + size.H/2,
		}

		weight := ins.Weight
		if weight == 0 {
			weight = 1.0
		}

		index[key] = len(nodes)
		nodes = append(nodes, Node{
			Instance: key,
			Center:   center,
			Size:     size,
			Fixed:    ins.State == design.PlacedAndFixed,
			Weight:   weight,
		})
	}

	return nodes, index, nil
}

// WriteBack applies solved centers back to the design container: each
// movable instance's lower-left position is set to center minus half
// its size, and its placement state transitions Unplaced -> Placed.
// Placed-and-fixed instances are left untouched (spec §4.2).
func WriteBack(mod *design.Module, nodes []Node, centers map[design.InstanceKey]design.Coord) {
	for _, node := range nodes {
		if node.Fixed {
			continue
		}
		center, ok := centers[node.Instance]
		if !ok {
			continue
		}
		ins := mod.Instance(node.Instance)
		ins.Pos = design.Coord{
			X: center.X - node.Size.W/2,
			Y: center.Y - node.Size.H/2,
		}
		if ins.State == design.Unplaced {
			ins.State = design.Placed
		}
	}
}
