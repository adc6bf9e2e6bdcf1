package format

import (
	"fmt"

	"github.com/joshuapare/qhfkit/internal/buf"
)

// Extent locates one record inside the container.
type Extent struct {
	Cursor    int    // nominal position the cursor stood at
	Start     int    // effective start after the zero-sign adjustment
	End       int    // exclusive end; the next record's nominal position
	BlockSize uint32 // payload size, excludes the 6-byte record header
	ZeroSign  bool   // sign read as zero and the start moved back one byte
}

// Size returns the total record length including its header.
func (e Extent) Size() int { return e.End - e.Start }

// NextRecord locates the record at cursor and returns its extent. When the
// sign field reads zero the writer omitted a leading pad byte, so the record
// actually starts one byte earlier than the cursor.
func NextRecord(b []byte, cursor int) (Extent, error) {
	sign, ok := buf.U16At(b, cursor)
	if !ok {
		return Extent{}, fmt.Errorf("record at %d: sign: %w", cursor, ErrRecordTruncated)
	}
	start := cursor
	zero := sign == 0
	if zero {
		start -= RecordZeroSignBackstep
		if start < 0 {
			return Extent{}, fmt.Errorf("record at %d: zero sign before buffer start: %w", cursor, ErrRecordTruncated)
		}
	}
	blockSize, ok := buf.U32At(b, start+RecordBlockSizeOffset)
	if !ok {
		return Extent{}, fmt.Errorf("record at %d: block size: %w", start, ErrRecordTruncated)
	}
	if uint64(blockSize) > uint64(len(b)) {
		return Extent{}, fmt.Errorf("record at %d: block size %d exceeds buffer of %d: %w",
			start, blockSize, len(b), ErrRecordTruncated)
	}
	end, ok := buf.Span(len(b), start, int(blockSize)+RecordHeaderSize)
	if !ok {
		return Extent{}, fmt.Errorf("record at %d: block size %d ends past %d: %w",
			start, blockSize, len(b), ErrRecordTruncated)
	}
	return Extent{
		Cursor:    cursor,
		Start:     start,
		End:       end,
		BlockSize: blockSize,
		ZeroSign:  zero,
	}, nil
}

// Cursor walks the record stream one extent at a time. It holds only the
// current position.
type Cursor struct {
	b   []byte
	pos int
}

// NewCursor returns a cursor positioned at start, normally
// Header.FirstRecordOffset.
func NewCursor(b []byte, start int) *Cursor {
	return &Cursor{b: b, pos: start}
}

// Pos returns the nominal position of the next record.
func (c *Cursor) Pos() int { return c.pos }

// Next returns the next record's extent and raw bytes, then advances past it.
// On error the cursor does not move.
func (c *Cursor) Next() (Extent, []byte, error) {
	ext, err := NextRecord(c.b, c.pos)
	if err != nil {
		return Extent{}, nil, err
	}
	c.pos = ext.End
	return ext, c.b[ext.Start:ext.End], nil
}

// Walk calls fn for exactly n records with 1-based sequence numbers. It stops
// at the first error from the cursor or from fn.
func (c *Cursor) Walk(n uint32, fn func(seq int, ext Extent, raw []byte) error) error {
	for i := uint32(0); i < n; i++ {
		ext, raw, err := c.Next()
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err := fn(int(i)+1, ext, raw); err != nil {
			return err
		}
	}
	return nil
}

// Record is one decoded message record. Text is still enciphered and aliases
// the raw slice.
type Record struct {
	StoredNumber uint32
	Timestamp    uint32
	Sent         bool
	MsgSize      uint32
	Text         []byte
}

// ParseRecord decodes the fixed fields of a raw record slice.
func ParseRecord(raw []byte) (Record, error) {
	if len(raw) < RecordTextOffset {
		return Record{}, fmt.Errorf("record: %d bytes, need %d: %w", len(raw), RecordTextOffset, ErrRecordTruncated)
	}
	size := buf.U32BE(raw[RecordMsgSizeOffset:])
	if uint64(size) > uint64(len(raw)-RecordTextOffset) {
		return Record{}, fmt.Errorf("record: msg size %d exceeds %d available: %w",
			size, len(raw)-RecordTextOffset, ErrRecordTruncated)
	}
	return Record{
		StoredNumber: buf.U32BE(raw[RecordMsgNumberOffset:]),
		Timestamp:    buf.U32BE(raw[RecordTimestampOffset:]),
		Sent:         raw[RecordSentOffset] != 0,
		MsgSize:      size,
		Text:         raw[RecordTextOffset : RecordTextOffset+int(size)],
	}, nil
}
