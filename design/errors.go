// SPDX-License-Identifier: MIT
package design

import "errors"

// Sentinel errors for design container operations.
var (
	// ErrNotFound indicates a lookup by Key or name found nothing.
	ErrNotFound = errors.New("design: object not found")
	// ErrDuplicateName indicates an insert used a name already present
	// in the relevant secondary index.
	ErrDuplicateName = errors.New("design: duplicate name")
	// ErrUnknownPin indicates a PinKey not present on the referenced Cell.
	ErrUnknownPin = errors.New("design: unknown pin")
	// ErrAlreadyConnected indicates a pin already has a net bound.
	ErrAlreadyConnected = errors.New("design: pin already connected")
	// ErrNotConnected indicates a disconnect was requested for an unbound pin.
	ErrNotConnected = errors.New("design: pin not connected")
	// ErrRowHeightMismatch indicates a Row's height does not equal its Site's height.
	ErrRowHeightMismatch = errors.New("design: row height does not match site height")
	// ErrRowOutsideRegion indicates a Row's x-extent is not contained in its Region's placement rectangle.
	ErrRowOutsideRegion = errors.New("design: row extends outside region placement rectangle")
)
