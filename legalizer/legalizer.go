// SPDX-License-Identifier: MIT
package legalizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/internal/logging"
)

// ErrInfeasibleDensity is returned when a region's rows, in total,
// cannot hold every movable instance even after overflow redistribution.
var ErrInfeasibleDensity = errors.New("legalizer: region density is infeasible")

type rowState struct {
	key       design.RowKey
	rect      design.Rect
	sitePitch int64
	cursor    int64 // next free x inside this row
	instances []design.InstanceKey
}

func (r *rowState) slack() int64 {
	used := r.cursor - r.rect.LL.X
	total := r.rect.Size.W
	return total - used
}

// Result reports how many instances were legalized and how many
// instances, if any, could not be placed in any row after overflow
// redistribution.
type Result struct {
	Legalized int
	Overflows int
}

// Legalize snaps every movable (non-fixed) InstanceCell in mod to a
// row and site-pitch-aligned x inside region, resolving row overlaps
// left to right. Rows are read from des via region.Rows.
func Legalize(mod *design.Module, des *design.Design, regionKey design.RegionKey) (Result, error) {
	region := des.Region(regionKey)
	if region == nil {
		return Result{}, fmt.Errorf("legalizer.Legalize: region: %w", design.ErrNotFound)
	}

	rows, err := buildRowStates(des, region)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("legalizer.Legalize: region %q has no rows: %w", region.Name, ErrInfeasibleDensity)
	}

	var overflow []design.InstanceKey
	for _, key := range mod.Instances() {
		ins := mod.Instance(key)
		if ins.Kind != design.InstanceCell || ins.State == design.PlacedAndFixed {
			continue
		}
		cell := des.Cell(ins.Archetype)
		if cell == nil {
			continue
		}

		rowIdx := nearestRow(rows, ins.Pos.Y+cell.Size.H/2)
		rows[rowIdx].instances = append(rows[rowIdx].instances, key)
	}

	for i := range rows {
		overflow = append(overflow, packRow(mod, des, rows[i])...)
	}

	remaining := overflow
	for pass := 0; pass < len(rows) && len(remaining) > 0; pass++ {
		var stillOver []design.InstanceKey
		for _, key := range remaining {
			ins := mod.Instance(key)
			cell := des.Cell(ins.Archetype)
			target := rowWithMostSlack(rows, cell.Size.W)
			if target < 0 {
				stillOver = append(stillOver, key)
				continue
			}
			rows[target].instances = append(rows[target].instances, key)
		}
		remaining = nil
		for i := range rows {
			remaining = append(remaining, packRow(mod, des, rows[i])...)
		}
		remaining = append(remaining, stillOver...)
		if len(stillOver) == len(remaining) {
			break // no progress possible this pass
		}
	}

	if len(remaining) > 0 {
		logging.Warnf("legalizer: region %q could not place %d instance(s) after overflow redistribution", region.Name, len(remaining))
		return Result{Overflows: len(remaining)}, fmt.Errorf("legalizer.Legalize: %w", ErrInfeasibleDensity)
	}

	legalized := 0
	for _, r := range rows {
		legalized += len(r.instances)
	}
	return Result{Legalized: legalized}, nil
}

func buildRowStates(des *design.Design, region *design.Region) ([]*rowState, error) {
	states := make([]*rowState, 0, len(region.Rows))
	for _, rowKey := range region.Rows {
		row := des.Row(rowKey)
		if row == nil {
			continue
		}
		pitch := row.Rect.Size.H // fallback if the named site can't be resolved
		if siteKey, ok := des.SiteByName(row.SiteKind); ok {
			if site := des.Site(siteKey); site != nil && site.Size.W > 0 {
				pitch = site.Size.W
			}
		}
		states = append(states, &rowState{key: rowKey, rect: row.Rect, sitePitch: pitch, cursor: row.Rect.LL.X})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].rect.LL.Y < states[j].rect.LL.Y })
	return states, nil
}

func nearestRow(rows []*rowState, y int64) int {
	best := 0
	bestDist := int64(-1)
	for i, r := range rows {
		mid := r.rect.LL.Y + r.rect.Size.H/2
		dist := y - mid
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

func quantizeToPitch(x, origin, pitch int64) int64 {
	if pitch <= 0 {
		return x
	}
	offset := x - origin
	snapped := (offset + pitch/2) / pitch * pitch
	return origin + snapped
}

// packRow compacts rowState's assigned instances left to right,
// quantizing y to the row and x to the site pitch, and returns any
// instances that overflowed the row's right edge.
func packRow(mod *design.Module, des *design.Design, r *rowState) []design.InstanceKey {
	sort.Slice(r.instances, func(i, j int) bool {
		return mod.Instance(r.instances[i]).Pos.X < mod.Instance(r.instances[j]).Pos.X
	})

	rowRight := r.rect.LL.X + r.rect.Size.W
	cursor := r.rect.LL.X

	var overflow []design.InstanceKey
	kept := r.instances[:0]
	for _, key := range r.instances {
		ins := mod.Instance(key)
		cell := des.Cell(ins.Archetype)

		x := quantizeToPitch(ins.Pos.X, r.rect.LL.X, r.sitePitch)
		if x < cursor {
			x = cursor
		}

		if x+cell.Size.W > rowRight {
			overflow = append(overflow, key)
			continue
		}

		ins.Pos = design.Coord{X: x, Y: r.rect.LL.Y}
		if ins.State == design.Unplaced {
			ins.State = design.Placed
		}
		cursor = x + cell.Size.W
		kept = append(kept, key)
	}

	r.instances = kept
	r.cursor = cursor
	return overflow
}

func rowWithMostSlack(rows []*rowState, need int64) int {
	best := -1
	bestSlack := int64(-1)
	for i, r := range rows {
		s := r.slack()
		if s >= need && s > bestSlack {
			bestSlack = s
			best = i
		}
	}
	return best
}
