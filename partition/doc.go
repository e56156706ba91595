// SPDX-License-Identifier: MIT
// Package partition implements the recursive netlist bisector (spec
// §4.4 / C4): split a placed module along its longer axis at the
// movable-area center of mass, producing two independent sub-netlists
// with optional fixed anchor nodes at the cut line.
//
// Grounded on the original tool's NetlistSplitter
// (selection-driven netlist copy with degenerate-net pruning) and
// qplacer.h's selectNodesByCenterOfMassPosition / doRecursivePartitioning.
package partition
