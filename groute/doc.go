// SPDX-License-Identifier: MIT
// Package groute performs global routing: it lays a coarse GCell grid
// over a region, builds a rectilinear Steiner-ish spanning tree per net
// via rmst.Prim, and connects each tree edge with a best-first maze
// search over the grid (spec §4.8 / C8).
//
// Grounded on the original tool's LunaCore::GlobalRouter (grid.h/.cpp
// for the GCell/Grid model, wavefront.h/.cpp for the priority-queue
// wavefront, globalrouter.h/.cpp for the maze search and net-level
// driver), reimplemented over container/heap the way rmst reimplements
// LunaCore::Prim and the way the teacher's graph/algorithms package
// builds its own heap-backed search structures.
package groute
