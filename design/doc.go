// SPDX-License-Identifier: MIT
// Package design implements the process-wide design container (spec §3):
// the single owner of every technology, cell-library, netlist, and
// floorplan entity. Every persistent object is addressed by a stable
// integer handle ("key") assigned on insertion and never reused; names
// are a secondary, case-sensitive index.
//
// The container itself holds no internal lock — per spec §5 the core
// engines are single-threaded and operate on a borrowed, mutably
// exclusive view; concurrent access across pipeline stages is provided
// by wrapping a *Design in internal/rwguard, not by locking here.
package design
