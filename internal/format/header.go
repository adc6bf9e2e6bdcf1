package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/qhfkit/internal/buf"
)

// Header holds the fixed-offset metadata of a container. UIN and Nick alias
// the source buffer; callers decode them to text.
type Header struct {
	MsgQuantity       uint32
	UIN               []byte
	Nick              []byte
	FirstRecordOffset int
}

// IsQHF reports whether b starts with the QHF signature.
func IsQHF(b []byte) bool {
	return buf.Has(b, 0, SignatureSize) && bytes.Equal(b[:SignatureSize], Signature)
}

// ParseHeader validates the signature and extracts the header fields. Every
// later offset depends on the two length prefixes, so a short buffer fails the
// whole header.
func ParseHeader(b []byte) (Header, error) {
	if !IsQHF(b) {
		if len(b) < SignatureSize {
			return Header{}, fmt.Errorf("qhf header: %w", ErrTruncated)
		}
		return Header{}, fmt.Errorf("qhf header: %w", ErrSignatureMismatch)
	}
	quantity, ok := buf.U32At(b, MsgQuantityOffset)
	if !ok {
		return Header{}, fmt.Errorf("qhf header: msg quantity: %w", ErrTruncated)
	}
	uinLen, ok := buf.U16At(b, UINLenOffset)
	if !ok {
		return Header{}, fmt.Errorf("qhf header: uin length: %w", ErrTruncated)
	}
	uin, ok := buf.Slice(b, UINOffset, int(uinLen))
	if !ok {
		return Header{}, fmt.Errorf("qhf header: uin (%d bytes): %w", uinLen, ErrTruncated)
	}
	nickLenOff := UINOffset + int(uinLen)
	nickLen, ok := buf.U16At(b, nickLenOff)
	if !ok {
		return Header{}, fmt.Errorf("qhf header: nick length at %d: %w", nickLenOff, ErrTruncated)
	}
	nickOff := nickLenOff + LenFieldSize
	nick, ok := buf.Slice(b, nickOff, int(nickLen))
	if !ok {
		return Header{}, fmt.Errorf("qhf header: nick (%d bytes): %w", nickLen, ErrTruncated)
	}
	return Header{
		MsgQuantity:       quantity,
		UIN:               uin,
		Nick:              nick,
		FirstRecordOffset: nickOff + int(nickLen),
	}, nil
}
