// SPDX-License-Identifier: MIT
// Package legalizer implements the row legalizer (spec §4.6 / C6):
// snap every movable instance in a region to a legal row and site
// pitch, resolve left-to-right overlaps within each row, and move
// overflow to the row with the most remaining slack; the distance from
// an overflowing instance to that row is not taken into account.
//
// Unlike the other core engines, this stage has no direct analogue in
// the original tool's extracted source (its row/site placement grid
// lives only behind its interactive GUI), so the algorithm follows
// spec §4.6 directly; the Region/Row data model it operates on is
// grounded on the design package's own container (spec §3), itself
// grounded on the original's floorplan data model.
package legalizer
