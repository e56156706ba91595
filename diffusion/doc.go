// SPDX-License-Identifier: MIT
// Package diffusion implements the density-diffusion overlap remover
// (spec §4.5 / C5): a regular bin grid over the placement rectangle
// tracks per-bin density, derives a velocity field from the density
// gradient, and advects movable instances along it until every bin is
// below a target density or a maximum iteration count is reached.
//
// Grounded on the original tool's QuickPlace::Bin2D (bin grid layout,
// out-of-bounds dummy bin returning a configurable boundary density,
// overlap-weighted density accumulation) and its average-instance-size
// bin sizing heuristic; the velocity/advection physics follow spec
// §4.5 directly; the original's own Diffusion::step is an unimplemented
// stub upstream, so there is no reference behavior to match there.
package diffusion
