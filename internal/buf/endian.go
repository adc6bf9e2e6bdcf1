// Package buf contains helpers for bounds-checked, big-endian decoding of
// in-memory history containers.
package buf

import "encoding/binary"

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U16At reads the big-endian uint16 at off. ok is false when the two bytes
// are not inside b.
func U16At(b []byte, off int) (uint16, bool) {
	s, ok := Slice(b, off, 2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(s), true
}

// U32At reads the big-endian uint32 at off. ok is false when the four bytes
// are not inside b.
func U32At(b []byte, off int) (uint32, bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(s), true
}
