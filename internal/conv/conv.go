// Package conv provides checked integer narrowing for state handles.
//
// Arena sizes are ints while state handles are uint32. A value that does not
// fit means the compiler's state limit was bypassed, which is a programming
// error, so these helpers panic instead of returning errors.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms do not overflow the constant
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
