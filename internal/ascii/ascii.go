// Package ascii detects input bytes outside 0-127.
//
// The automaton only has transitions on ASCII characters, so a matcher can
// reject any input holding a byte >= 0x80 before simulating it.
package ascii

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const hi8 = uint64(0x8080808080808080)

// wide selects the 32-bytes-per-iteration loop on CPUs with wide vector
// units. Both loops are scalar SWAR; the unrolled one issues four independent
// loads per branch, which these cores retire in parallel.
// BenchmarkIsASCII compares the two.
var wide = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// IsASCII checks if all bytes in the slice are ASCII (< 0x80).
//
// Algorithm (SWAR, SIMD Within A Register):
//  1. Read 8 bytes as a little-endian uint64
//  2. AND with 0x8080808080808080 to extract the high bits
//  3. Any non-zero result means a byte >= 0x80
//  4. Check the 0-7 byte tail one at a time
func IsASCII(data []byte) bool {
	i := 0
	if wide {
		for ; i+32 <= len(data); i += 32 {
			a := binary.LittleEndian.Uint64(data[i:])
			b := binary.LittleEndian.Uint64(data[i+8:])
			c := binary.LittleEndian.Uint64(data[i+16:])
			d := binary.LittleEndian.Uint64(data[i+24:])
			if (a|b|c|d)&hi8 != 0 {
				return false
			}
		}
	}
	for ; i+8 <= len(data); i += 8 {
		if binary.LittleEndian.Uint64(data[i:])&hi8 != 0 {
			return false
		}
	}
	for ; i < len(data); i++ {
		if data[i] >= 0x80 {
			return false
		}
	}
	return true
}

// IsASCIIString is IsASCII for strings. It reads s in place without copying.
func IsASCIIString(s string) bool {
	if len(s) == 0 {
		return true
	}
	return IsASCII(unsafe.Slice(unsafe.StringData(s), len(s)))
}
