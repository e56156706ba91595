// Package pnrcore is an ASIC physical-design back end: placement,
// clock-tree synthesis, and global routing over a netlist/floorplan
// database, sequenced as a resumable pipeline of named stages.
//
// Under the hood, the core engines are organized by stage:
//
//	design/       — the process-wide container: cells, modules, nets, regions, rows
//	algebra/      — sparse matrix, dense vector, conjugate-gradient solver
//	placer/       — quadratic / force-directed placement
//	partition/    — netlist partitioning
//	diffusion/    — density diffusion (bin-based spreading)
//	legalizer/    — row legalization
//	rmst/         — rectilinear minimum spanning tree (Prim)
//	groute/       — global routing grid and maze search
//	cts/          — clock tree synthesis (mean-and-median buffering)
//	pipeline/     — the ordered stage sequencer tying the above together
//
// Ambient and domain-facing support lives under internal/ and
// external/: leveled logging, an MPSC event queue, a generic RWMutex
// wrapper, CLI table rendering, a GDS2 float codec and orientation
// mapper, a minimal Verilog reader/writer, environment-variable path
// substitution, a pass registry/dispatcher, a sqlite-backed run
// history, and an optional HTTP status endpoint.
//
// See DESIGN.md for how each package is grounded, and SPEC_FULL.md for
// the complete requirements this module implements.
package pnrcore
