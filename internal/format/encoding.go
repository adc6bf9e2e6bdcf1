package format

import "encoding/binary"

// Big-endian writers used to lay out synthetic containers. The parser itself
// reads through internal/buf.

// PutU16 writes a uint16 value to the buffer at the specified offset in big-endian format.
func PutU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}
