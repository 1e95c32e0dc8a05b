// Package math provides the float32 vector, quaternion and matrix types used
// by the engine. Angles passed to rotation helpers are in degrees.
package math

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	// ErrZeroLength is returned when normalizing a vector or quaternion of length 0.
	ErrZeroLength = errors.New("math: zero length")

	// ErrSingularMatrix is returned when inverting a matrix whose determinant is 0.
	ErrSingularMatrix = errors.New("math: singular matrix")
)

// Epsilon is the default tolerance for approximate comparisons.
const Epsilon = 1e-5

// ToRadians converts degrees to radians.
func ToRadians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
