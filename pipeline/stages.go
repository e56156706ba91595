package pipeline

import (
	"errors"
	"fmt"

	"github.com/lunapnr/pnrcore/config"
	"github.com/lunapnr/pnrcore/cts"
	"github.com/lunapnr/pnrcore/design"
	"github.com/lunapnr/pnrcore/diffusion"
	"github.com/lunapnr/pnrcore/groute"
	"github.com/lunapnr/pnrcore/internal/logging"
	"github.com/lunapnr/pnrcore/legalizer"
	"github.com/lunapnr/pnrcore/placer"
)

// ErrNoRegion is returned when Inputs.Region does not resolve to a
// Region in Inputs.Design.
var ErrNoRegion = errors.New("pipeline: region not found")

// StageNames is the fixed stage order spec §4.10 declares:
// read_inputs → preflight → create_floorplan → place → cts →
// check_timing_cts → global_route → check_timing_spef.
var StageNames = []string{
	"read_inputs",
	"preflight",
	"create_floorplan",
	"place",
	"cts",
	"check_timing_cts",
	"global_route",
	"check_timing_spef",
}

// Inputs bundles every handle the built-in stage order needs to drive
// the placement, CTS, and routing engines over one module.
type Inputs struct {
	Design *design.Design
	Module *design.Module
	Config config.Config

	// Region is the floorplan region the placer legalizes into.
	Region design.RegionKey

	// ClockNet is the net CTS buffers. If NoKey, the cts stage is a no-op.
	ClockNet    design.NetKey
	ClockBuffer cts.BufferSpec
	// ClockCMax overrides Config.CTSDefaultCMax when non-zero.
	ClockCMax float64

	// GridCellSize sizes each routing GCell; GridCapacity bounds its
	// track count. If GridCellSize is zero-valued, global_route is a no-op.
	GridCellSize design.Size
	GridCapacity int64
}

// Build assembles the standard 8-stage pipeline (spec §4.10) wired
// against in.
func Build(in Inputs) (*Pipeline, error) {
	return New(
		Stage{Name: "read_inputs", Run: stageReadInputs(in)},
		Stage{Name: "preflight", Run: stagePreflight(in)},
		Stage{Name: "create_floorplan", Run: stageCreateFloorplan(in)},
		Stage{Name: "place", Run: stagePlace(in)},
		Stage{Name: "cts", Run: stageCTS(in)},
		Stage{Name: "check_timing_cts", Run: stageCheckTiming(in, "cts")},
		Stage{Name: "global_route", Run: stageGlobalRoute(in)},
		Stage{Name: "check_timing_spef", Run: stageCheckTiming(in, "spef")},
	)
}

// stageReadInputs stands in for the LEF/Liberty/Verilog/SDC parsing
// pass (spec §6.1, C11): those formats are external collaborators
// whose typed-handle result this pipeline assumes is already loaded
// into in.Design by the time the pipeline runs.
func stageReadInputs(in Inputs) StageFunc {
	return func(report func(int)) error {
		logging.Infof("pipeline: read_inputs: module %q has %d instance(s) already resident",
			in.Module.Name, len(in.Module.Instances()))
		return nil
	}
}

// stagePreflight checks the data-model invariants spec §3 calls out
// directly: every net has at least two connections (else it is
// degenerate and will be silently skipped by the placer/router), and
// every instance references a cell that still exists.
func stagePreflight(in Inputs) StageFunc {
	return func(report func(int)) error {
		mod := in.Module
		degenerate := 0
		for _, nk := range mod.Nets() {
			net := mod.Net(nk)
			if net.Degenerate() {
				degenerate++
			}
		}
		if degenerate > 0 {
			logging.Warnf("pipeline: preflight: %d degenerate net(s) will be ignored", degenerate)
		}

		for _, ik := range mod.Instances() {
			ins := mod.Instance(ik)
			if ins.Kind == design.InstanceCell && in.Design.Cell(ins.Archetype) == nil {
				return fmt.Errorf("pipeline: preflight: instance %q has no resolvable archetype cell", ins.Name)
			}
		}
		return nil
	}
}

// stageCreateFloorplan validates the Row invariant spec §3 states
// explicitly: row height equals site height, and each row's x-extent
// lies within the region's placement rectangle.
func stageCreateFloorplan(in Inputs) StageFunc {
	return func(report func(int)) error {
		region := in.Design.Region(in.Region)
		if region == nil {
			return fmt.Errorf("pipeline: create_floorplan: %w", ErrNoRegion)
		}
		site, ok := in.Design.SiteByName(region.SiteName)
		if !ok {
			return fmt.Errorf("pipeline: create_floorplan: region %q: site %q: %w",
				region.Name, region.SiteName, design.ErrNotFound)
		}
		siteInfo := in.Design.Site(site)
		placeRect := region.PlacementRect()

		for _, rk := range region.Rows {
			row := in.Design.Row(rk)
			if row == nil {
				continue
			}
			if row.Rect.Size.H != siteInfo.Size.H {
				return fmt.Errorf("pipeline: create_floorplan: row in region %q: height %d != site height %d",
					region.Name, row.Rect.Size.H, siteInfo.Size.H)
			}
			if row.Rect.LL.X < placeRect.LL.X || row.Rect.UR().X > placeRect.UR().X {
				return fmt.Errorf("pipeline: create_floorplan: row in region %q: x-extent outside placement rect",
					region.Name)
			}
		}
		logging.Infof("pipeline: create_floorplan: region %q has %d row(s)", region.Name, len(region.Rows))
		return nil
	}
}

// stagePlace runs the quadratic placer, density diffuser, and row
// legalizer in sequence (C3 → C5 → C6, spec §2's control-flow line).
func stagePlace(in Inputs) StageFunc {
	return func(report func(int)) error {
		mod, des, cfg := in.Module, in.Design, in.Config

		if _, err := placer.Solve(mod, des, cfg); err != nil {
			return fmt.Errorf("pipeline: place: quadratic solve: %w", err)
		}
		report(33)

		region := des.Region(in.Region)
		if region == nil {
			return fmt.Errorf("pipeline: place: %w", ErrNoRegion)
		}
		site, ok := des.SiteByName(region.SiteName)
		if !ok {
			return fmt.Errorf("pipeline: place: region %q: site %q: %w", region.Name, region.SiteName, design.ErrNotFound)
		}

		diffuser, err := diffusion.New(mod, des, region.PlacementRect(), des.Site(site).Size, cfg)
		if err != nil {
			return fmt.Errorf("pipeline: place: diffusion setup: %w", err)
		}
		result := diffuser.Run()
		logging.Infof("pipeline: place: diffusion converged=%v after %d iterations", result.Converged, result.Iterations)
		report(66)

		if _, err := legalizer.Legalize(mod, des, in.Region); err != nil {
			return fmt.Errorf("pipeline: place: legalize: %w", err)
		}
		report(100)
		return nil
	}
}

// stageCTS buffers in.ClockNet with mean-and-median clustering (C9).
// A zero ClockNet skips the stage: not every design under pipeline
// control carries a clock to synthesize.
func stageCTS(in Inputs) StageFunc {
	return func(report func(int)) error {
		if in.ClockNet == design.NoKey {
			logging.Infof("pipeline: cts: no clock net configured, skipping")
			return nil
		}
		cmax := in.ClockCMax
		if cmax <= 0 {
			cmax = in.Config.CTSDefaultCMax
		}
		result, err := cts.Synthesize(in.Module, in.Design, in.ClockNet, in.ClockBuffer, cmax)
		if err != nil {
			return fmt.Errorf("pipeline: cts: %w", err)
		}
		logging.Infof("pipeline: cts: %d buffer(s) inserted for %d sinks", result.BuffersInserted, result.SinksConnected)
		return nil
	}
}

// stageCheckTiming stands in for the OpenSTA subprocess timing-check
// glue spec §1 lists as an external collaborator; this core never
// invokes an external timing tool, so the stage is a pass-through that
// records which checkpoint was reached.
func stageCheckTiming(in Inputs, checkpoint string) StageFunc {
	return func(report func(int)) error {
		logging.Infof("pipeline: check_timing_%s: deferred to external timing tool", checkpoint)
		return nil
	}
}

// stageGlobalRoute decomposes every non-degenerate net into a
// rectilinear MST and routes each tree edge on a capacity-tracking
// grid (C7 → C8). A zero GridCellSize skips the stage.
func stageGlobalRoute(in Inputs) StageFunc {
	return func(report func(int)) error {
		if in.GridCellSize.W == 0 || in.GridCellSize.H == 0 {
			logging.Infof("pipeline: global_route: no grid cell size configured, skipping")
			return nil
		}

		region := in.Design.Region(in.Region)
		if region == nil {
			return fmt.Errorf("pipeline: global_route: %w", ErrNoRegion)
		}
		placeRect := region.PlacementRect()
		width := placeRect.Size.W / in.GridCellSize.W
		height := placeRect.Size.H / in.GridCellSize.H
		if width <= 0 || height <= 0 {
			return fmt.Errorf("pipeline: global_route: placement rect too small for cell size")
		}

		capacity := in.GridCapacity
		if capacity <= 0 {
			capacity = in.Config.RouterMaxCapacity
		}

		router := groute.New(in.Config)
		router.CreateGrid(width, height, in.GridCellSize, capacity)

		nets := in.Module.Nets()
		routed := 0
		for i, nk := range nets {
			net := in.Module.Net(nk)
			if net.Degenerate() {
				continue
			}
			terminals, err := netTerminals(in.Module, in.Design, net)
			if err != nil {
				return fmt.Errorf("pipeline: global_route: net %q: %w", net.Name, err)
			}
			if _, err := router.RouteNet(terminals, net.Name); err != nil {
				return fmt.Errorf("pipeline: global_route: net %q: %w", net.Name, err)
			}
			routed++
			report(100 * (i + 1) / len(nets))
		}
		logging.Infof("pipeline: global_route: routed %d of %d net(s)", routed, len(nets))
		return nil
	}
}

func netTerminals(mod *design.Module, des *design.Design, net *design.Net) ([]design.Coord, error) {
	terminals := make([]design.Coord, 0, len(net.Connections))
	for _, c := range net.Connections {
		ins := mod.Instance(c.Instance)
		if ins == nil {
			continue
		}
		pos := ins.Pos
		if cell := des.Cell(ins.Archetype); cell != nil && int(c.Pin) < len(cell.Pins) {
			pos = pos.Add(cell.Pins[c.Pin].Offset)
		}
		terminals = append(terminals, pos)
	}
	return terminals, nil
}
