// SPDX-License-Identifier: MIT
// Package rmst builds a separable minimum spanning tree over a net's
// terminal positions using Prim's algorithm with the 3-tuple
// rectilinear tie-break from "New Algorithms for the Rectilinear
// Steiner Tree Problem" (IEEE TCAD, Vol 9 No 2, 1990), spec §4.7 / C7.
//
// Grounded on the original tool's LunaCore::Prim (prim.h/prim.cpp,
// prim_private.h's CostTuple lexicographic ordering), reimplemented
// over container/heap the way the teacher's graph/algorithms package
// implements its own Prim MST min-spanning-tree heap.
package rmst
