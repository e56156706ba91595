// SPDX-License-Identifier: MIT
package partition

import (
	"fmt"
	"sort"

	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
)

// Result names the two sub-modules produced by a Split.
type Result struct {
	A, B design.ModuleKey
}

type instRecord struct {
	key    design.InstanceKey
	center int64
	fixed  bool
	area   float64
}

func instanceArea(des *design.Design, ins *design.Instance) float64 {
	if ins.Kind != design.InstanceCell {
		return 0
	}
	cell := des.Cell(ins.Archetype)
	if cell == nil {
		return 0
	}
	return float64(cell.Size.W) * float64(cell.Size.H)
}

func instanceCenter(des *design.Design, ins *design.Instance, axisX bool) int64 {
	size := design.Size{}
	if ins.Kind == design.InstanceCell {
		if cell := des.Cell(ins.Archetype); cell != nil {
			size = cell.Size
		}
	}
	if axisX {
		return ins.Pos.X + size.W/2
	}
	return ins.Pos.Y + size.H/2
}

// selectLowHalf orders every instance by center along the split axis
// and returns the set of instance keys belonging to the smallest
// position-ordered prefix whose cumulative movable area reaches half
// the module's total movable area (spec §4.4). Fixed instances never
// contribute to the area sum but may still fall inside the returned
// prefix by position.
func selectLowHalf(mod *design.Module, des *design.Design, axisX bool) (map[design.InstanceKey]bool, int64) {
	instKeys := mod.Instances()
	recs := make([]instRecord, 0, len(instKeys))
	var totalMass float64
	for _, key := range instKeys {
		ins := mod.Instance(key)
		fixed := ins.State == design.PlacedAndFixed
		area := instanceArea(des, ins)
		if !fixed {
			totalMass += area
		}
		recs = append(recs, instRecord{key: key, center: instanceCenter(des, ins, axisX), fixed: fixed, area: area})
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].center < recs[j].center })

	selected := make(map[design.InstanceKey]bool, len(recs))
	var runningMass float64
	var cutCoord int64
	idx := 0
	for idx < len(recs) && runningMass < totalMass/2 {
		rec := recs[idx]
		selected[rec.key] = true
		if !rec.fixed {
			runningMass += rec.area
		}
		cutCoord = rec.center
		idx++
	}
	if idx < len(recs) {
		cutCoord = (cutCoord + recs[idx].center) / 2
	}

	return selected, cutCoord
}

// Split partitions mod along the longer axis of rect at the
// movable-area center of mass (spec §4.4): instances ordered by
// center on that axis, the smallest prefix reaching half the movable
// area becomes side A, the rest becomes side B. Each side is a fresh
// module in des with its own copied instances and rebuilt nets; nets
// left with fewer than two included instances on a side are dropped,
// optionally replaced by a fixed anchor instance at the cut line when
// withAnchors is set and the net crosses both sides.
func Split(des *design.Design, mod *design.Module, rect design.Rect, withAnchors bool, nameA, nameB string) (Result, error) {
	axisX := rect.Size.W > rect.Size.H

	selected, cutCoord := selectLowHalf(mod, des, axisX)

	modAKey, err := des.AddModule(nameA)
	if err != nil {
		return Result{}, fmt.Errorf("partition.Split: %w", err)
	}
	modBKey, err := des.AddModule(nameB)
	if err != nil {
		return Result{}, fmt.Errorf("partition.Split: %w", err)
	}

	sideA := buildSide(des, mod, des.Module(modAKey), selected, true, axisX, cutCoord, withAnchors)
	sideB := buildSide(des, mod, des.Module(modBKey), selected, false, axisX, cutCoord, withAnchors)

	_ = sideA
	_ = sideB

	return Result{A: modAKey, B: modBKey}, nil
}

// buildSide copies every instance selected for `want` into dst, then
// rebuilds nets restricted to that selection, materializing anchors
// for nets that cross the cut when requested.
func buildSide(des *design.Design, src, dst *design.Module, selected map[design.InstanceKey]bool, want, axisX bool, cutCoord int64, withAnchors bool) map[design.InstanceKey]design.InstanceKey {
	xlat := make(map[design.InstanceKey]design.InstanceKey)

	for _, key := range src.Instances() {
		if selected[key] != want {
			continue
		}
		ins := src.Instance(key)
		newKey, err := dst.AddInstance(ins.Name, ins.Archetype, ins.Kind)
		if err != nil {
			continue // duplicate names across unrelated instances shouldn't occur; skip defensively
		}
		newIns := dst.Instance(newKey)
		newIns.Pos = ins.Pos
		newIns.Orientation = ins.Orientation
		newIns.State = ins.State
		newIns.Weight = ins.Weight
		xlat[key] = newKey
	}

	for _, netKey := range src.Nets() {
		net := src.Net(netKey)

		var included []design.Connection
		crossesOut := false
		for _, conn := range net.Connections {
			if _, ok := xlat[conn.Instance]; ok {
				included = append(included, conn)
			} else {
				crossesOut = true
			}
		}

		if len(included) >= 2 {
			newNetKey, err := dst.AddNet(net.Name, net.Weight)
			if err != nil {
				continue
			}
			for _, conn := range included {
				_ = dst.Connect(xlat[conn.Instance], conn.Pin, newNetKey)
			}
			continue
		}

		if len(included) == 1 && crossesOut && withAnchors {
			addAnchor(des, src, dst, net, included[0], xlat, axisX, cutCoord, want)
			continue
		}

		if len(included) > 0 {
			logging.Debugf("partition: net %q degenerate on this side, dropped", net.Name)
		}
	}

	return xlat
}

// addAnchor materializes a fixed dummy instance at the cut line and
// connects it alongside the one surviving endpoint, so the half keeps
// pull toward cells that ended up on the other side (spec §4.4).
func addAnchor(des *design.Design, src, dst *design.Module, net *design.Net, keep design.Connection, xlat map[design.InstanceKey]design.InstanceKey, axisX bool, cutCoord int64, want bool) {
	anchorName := "anchor$" + net.Name
	anchorKey, err := dst.AddInstance(anchorName, design.NoKey, design.InstancePin)
	if err != nil {
		return
	}
	anchor := dst.Instance(anchorKey)
	anchor.State = design.PlacedAndFixed

	// perpendicular coordinate: reuse the kept instance's own position
	// so the anchor pulls straight across the cut, not diagonally.
	keptIns := src.Instance(keep.Instance)
	pos := keptIns.Pos
	if axisX {
		pos.X = cutCoord
	} else {
		pos.Y = cutCoord
	}
	anchor.Pos = pos

	newNetKey, err := dst.AddNet(net.Name, net.Weight)
	if err != nil {
		return
	}
	_ = dst.Connect(xlat[keep.Instance], keep.Pin, newNetKey)
	_ = dst.Connect(anchorKey, 0, newNetKey)
}
