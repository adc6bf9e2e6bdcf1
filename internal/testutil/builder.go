// Package testutil builds synthetic QHF containers for tests.
package testutil

import (
	"github.com/joshuapare/qhfkit/internal/format"
)

// Message describes one record to lay out.
type Message struct {
	StoredNumber uint32
	Timestamp    uint32
	Sent         bool
	Text         string

	// Encoded, when set, is written verbatim instead of enciphering Text.
	Encoded []byte
	// ZeroSign writes the record without its leading pad byte so the sign
	// at the nominal cursor reads zero.
	ZeroSign bool
	// Padding appends unused payload bytes after the text.
	Padding int
	// MsgSize overrides the declared text size when nonzero.
	MsgSize uint32
	// BlockSize overrides the declared block size when nonzero.
	BlockSize uint32
}

// Builder lays out a container. Zero value plus fields is ready to use.
type Builder struct {
	UIN  string
	Nick string

	// UINRaw and NickRaw override the string fields with raw bytes.
	UINRaw  []byte
	NickRaw []byte

	// Quantity overrides the declared message count when non-nil.
	Quantity *uint32

	Messages []Message
}

// NewBuilder returns a builder for the given participant.
func NewBuilder(uin, nick string) *Builder {
	return &Builder{UIN: uin, Nick: nick}
}

// Add appends a message and returns the builder for chaining.
func (b *Builder) Add(m Message) *Builder {
	b.Messages = append(b.Messages, m)
	return b
}

// Bytes returns the container bytes.
func (b *Builder) Bytes() []byte {
	data, _ := b.Build()
	return data
}

// Build returns the container bytes and the effective start offset of every
// record.
func (b *Builder) Build() ([]byte, []int) {
	uin := b.UINRaw
	if uin == nil {
		uin = []byte(b.UIN)
	}
	nick := b.NickRaw
	if nick == nil {
		nick = []byte(b.Nick)
	}
	quantity := uint32(len(b.Messages))
	if b.Quantity != nil {
		quantity = *b.Quantity
	}

	head := make([]byte, format.UINOffset)
	copy(head, format.Signature)
	head[format.SignatureSize] = 0x03
	format.PutU32(head, format.MsgQuantityOffset, quantity)
	format.PutU16(head, format.UINLenOffset, uint16(len(uin)))

	data := append(head, uin...)
	lenField := make([]byte, format.LenFieldSize)
	format.PutU16(lenField, 0, uint16(len(nick)))
	data = append(data, lenField...)
	data = append(data, nick...)

	starts := make([]int, 0, len(b.Messages))
	for _, m := range b.Messages {
		rec := EncodeRecord(m)
		if m.ZeroSign {
			// The omitted pad byte is shared with the previous record's tail.
			starts = append(starts, len(data)-1)
			data = append(data, rec[1:]...)
			continue
		}
		starts = append(starts, len(data))
		data = append(data, rec...)
	}
	return data, starts
}

// EncodeRecord lays out a single record starting with its sign field.
func EncodeRecord(m Message) []byte {
	text := m.Encoded
	if text == nil {
		text = format.Transform([]byte(m.Text))
	}
	msgSize := uint32(len(text))
	if m.MsgSize != 0 {
		msgSize = m.MsgSize
	}
	blockSize := uint32(format.RecordMinPayloadSize + len(text) + m.Padding)
	if m.BlockSize != 0 {
		blockSize = m.BlockSize
	}

	rec := make([]byte, format.RecordTextOffset+len(text)+m.Padding)
	if !m.ZeroSign {
		format.PutU16(rec, 0, 0x0001)
	}
	format.PutU32(rec, format.RecordBlockSizeOffset, blockSize)
	format.PutU32(rec, format.RecordMsgNumberOffset, m.StoredNumber)
	format.PutU32(rec, format.RecordTimestampOffset, m.Timestamp)
	if m.Sent {
		rec[format.RecordSentOffset] = 1
	}
	format.PutU32(rec, format.RecordMsgSizeOffset, msgSize)
	copy(rec[format.RecordTextOffset:], text)
	return rec
}

// Uint32 returns a pointer to v, for Builder.Quantity.
func Uint32(v uint32) *uint32 { return &v }
