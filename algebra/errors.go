// SPDX-License-Identifier: MIT
package algebra

import "errors"

// Sentinel errors for algebra package operations.
var (
	// ErrIndexOutOfBounds indicates a row or column index outside [0, N).
	ErrIndexOutOfBounds = errors.New("algebra: index out of bounds")
	// ErrDimensionMismatch indicates two vectors/matrices have incompatible sizes.
	ErrDimensionMismatch = errors.New("algebra: dimension mismatch")
)
