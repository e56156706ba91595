// SPDX-License-Identifier: MIT
package gds2

import "github.com/lunapnr/pnrcore/design"

// Transform is the (flip, angle, offset) triple a GDS2 SREF record
// needs to place an instance: Flip selects the STRANS mirror bit,
// AngleDeg is the ANGLE record value, and Offset is added to the
// instance's placed position before it is written.
type Transform struct {
	Flip     bool
	AngleDeg int
	Offset   design.Coord
}

// OrientationTransform maps an instance orientation to the GDS2
// transform spec §6.1 specifies: R0 stays put at angle 0; R90 rotates
// to angle 90 and shifts by the instance's height along x; R180
// rotates to angle 180 and shifts by the full instance size along both
// axes; R270 rotates to angle 270 and shifts by the instance's width
// along y. None of the four ever flips.
//
// MX, MY, MX90, and MY90 aren't covered by any case in the mapping
// this is ported from — the writer's if-else chain simply falls
// through for them, leaving flip/angle/offset at their zero values.
// OrientationTransform mirrors that: it returns the R0 identity
// transform for all four mirrored orientations rather than guessing a
// mirror encoding the original never implements.
func OrientationTransform(o design.Orientation, size design.Size) Transform {
	switch o {
	case design.R90:
		return Transform{AngleDeg: 90, Offset: design.Coord{X: size.H, Y: 0}}
	case design.R180:
		return Transform{AngleDeg: 180, Offset: design.Coord{X: size.W, Y: size.H}}
	case design.R270:
		return Transform{AngleDeg: 270, Offset: design.Coord{X: 0, Y: size.W}}
	default:
		return Transform{AngleDeg: 0}
	}
}
