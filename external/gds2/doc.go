// SPDX-License-Identifier: MIT
// Package gds2 implements the two low-level GDS2 writer concerns spec
// §6.1 singles out: the VAX-style internal float format (sign bit,
// 7-bit excess-64 exponent, 56-bit mantissa) and the instance
// orientation→(flip, angle, offset) mapping a GDS2 SREF record needs.
//
// Grounded on the original tool's LunaCore::GDS2::IEEE2GDSFloat /
// GDS2Float2IEEE (original_source/core/common/gds2defs.cpp) for the
// float codec, and the orientation switch in
// original_source/core/export/gds2/gds2writer.cpp's instance-writing
// function for the transform. Both are ported arithmetic, not
// reinvented: the codec's exponent search and mantissa rounding follow
// the original's steps exactly, and the orientation cases keep the
// original's angle/offset pairing for R0/R90/R180/R270. The original's
// FLIP branches are all `if (false)` — dead code never taken for any
// orientation — so flip is always false here too; MX/MY/MX90/MY90 fall
// through the original's if-else chain untouched (no case matches
// them), which this package mirrors by returning the R0 identity
// transform for them, the same no-op the original leaves in place.
package gds2
