package types

import (
	"fmt"
	"sync"
	"time"

	"github.com/joshuapare/qhfkit/internal/format"
)

// MessageData carries the fields a parser extracts from one record.
type MessageData struct {
	Seq          int    // 1-based position assigned by the cursor
	StoredNumber uint32 // number stored inside the record; informational only
	Timestamp    uint32 // UNIX seconds, UTC
	Sent         bool   // true when the owner sent the message
	Encoded      []byte // enciphered text
	Offset       int    // effective record start within the container
}

// Message is one record of a History. Text decoding happens on first use and
// is cached; the result is identical to decoding eagerly.
type Message struct {
	data        MessageData
	placeholder string

	once sync.Once
	text string
	err  error
}

// NewMessage wraps d. placeholder replaces text that fails to decode; empty
// means DefaultPlaceholder.
func NewMessage(d MessageData, placeholder string) *Message {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Message{data: d, placeholder: placeholder}
}

// Seq returns the 1-based sequence number.
func (m *Message) Seq() int { return m.data.Seq }

// StoredNumber returns the number embedded in the record. It may repeat or
// skip and is never used for lookup.
func (m *Message) StoredNumber() uint32 { return m.data.StoredNumber }

// Timestamp returns the raw UNIX timestamp.
func (m *Message) Timestamp() uint32 { return m.data.Timestamp }

// Time returns the timestamp in UTC.
func (m *Message) Time() time.Time { return format.UnixToTime(m.data.Timestamp) }

// Sent reports whether the owner of the history sent the message.
func (m *Message) Sent() bool { return m.data.Sent }

// Offset returns the effective start of the record within the container.
func (m *Message) Offset() int { return m.data.Offset }

// Encoded returns a copy of the enciphered text bytes.
func (m *Message) Encoded() []byte {
	return append([]byte(nil), m.data.Encoded...)
}

// DecodeText deciphers the text. A failure is an ErrKindDecode error scoped
// to this message only.
func (m *Message) DecodeText() (string, error) {
	m.once.Do(func() {
		text, err := format.DecodeText(m.data.Encoded)
		if err != nil {
			m.err = &Error{
				Kind: ErrKindDecode,
				Msg:  fmt.Sprintf("message %d", m.data.Seq),
				Err:  err,
			}
			return
		}
		m.text = text
	})
	return m.text, m.err
}

// Text returns the deciphered text, or the placeholder when it does not
// decode.
func (m *Message) Text() string {
	text, err := m.DecodeText()
	if err != nil {
		return m.placeholder
	}
	return text
}

// Sender resolves the display name: owner for sent messages, nick otherwise.
func (m *Message) Sender(owner, nick string) string {
	if m.data.Sent {
		return owner
	}
	return nick
}

// History is a parsed container. It is immutable and safe for concurrent
// readers.
type History struct {
	uin         string
	nick        string
	quantity    uint32
	messages    []*Message
	firstRecord int
	size        int
	zeroSign    int
	trace       []TraceEntry
}

// HistoryData carries everything a parser collected for NewHistory.
type HistoryData struct {
	UIN               string
	Nick              string
	MsgQuantity       uint32
	Messages          []*Message
	FirstRecordOffset int
	Size              int
	ZeroSignRecords   int
	Trace             []TraceEntry
}

// NewHistory builds a History. len(d.Messages) must equal d.MsgQuantity and
// each message's Seq must equal its index plus one.
func NewHistory(d HistoryData) (*History, error) {
	if uint64(len(d.Messages)) != uint64(d.MsgQuantity) {
		return nil, &Error{
			Kind: ErrKindState,
			Msg:  fmt.Sprintf("history holds %d messages, header declares %d", len(d.Messages), d.MsgQuantity),
		}
	}
	for i, m := range d.Messages {
		if m == nil || m.Seq() != i+1 {
			return nil, &Error{Kind: ErrKindState, Msg: fmt.Sprintf("message at index %d is out of sequence", i)}
		}
	}
	return &History{
		uin:         d.UIN,
		nick:        d.Nick,
		quantity:    d.MsgQuantity,
		messages:    d.Messages,
		firstRecord: d.FirstRecordOffset,
		size:        d.Size,
		zeroSign:    d.ZeroSignRecords,
		trace:       d.Trace,
	}, nil
}

// UIN returns the remote participant's identifier.
func (h *History) UIN() string { return h.uin }

// Nick returns the remote participant's display name.
func (h *History) Nick() string { return h.nick }

// MsgQuantity returns the message count declared by the header.
func (h *History) MsgQuantity() uint32 { return h.quantity }

// Len returns the number of messages.
func (h *History) Len() int { return len(h.messages) }

// Message returns the message with the given 1-based sequence number.
func (h *History) Message(seq int) (*Message, error) {
	if seq < 1 || seq > len(h.messages) {
		return nil, &Error{
			Kind: ErrKindOutOfRange,
			Msg:  fmt.Sprintf("message number %d must be in range 1 to %d", seq, h.quantity),
		}
	}
	return h.messages[seq-1], nil
}

// Range returns messages from..to inclusive.
func (h *History) Range(from, to int) ([]*Message, error) {
	if from > to {
		return nil, &Error{Kind: ErrKindOutOfRange, Msg: fmt.Sprintf("empty range %d..%d", from, to)}
	}
	if _, err := h.Message(from); err != nil {
		return nil, err
	}
	if _, err := h.Message(to); err != nil {
		return nil, err
	}
	return append([]*Message(nil), h.messages[from-1:to]...), nil
}

// Messages returns the messages in sequence order. The slice is a copy.
func (h *History) Messages() []*Message {
	return append([]*Message(nil), h.messages...)
}

// Trace returns the cursor trace, or nil unless ParseOptions.TraceCursor was
// set.
func (h *History) Trace() []TraceEntry {
	return append([]TraceEntry(nil), h.trace...)
}

// Info summarises the history. It decodes every message to count failures.
func (h *History) Info() Info {
	info := Info{
		UIN:               h.uin,
		Nick:              h.nick,
		MsgQuantity:       h.quantity,
		FirstRecordOffset: h.firstRecord,
		Size:              h.size,
		ZeroSignRecords:   h.zeroSign,
	}
	for i, m := range h.messages {
		if _, err := m.DecodeText(); err != nil {
			info.DecodeFailures++
		}
		t := m.Time()
		if i == 0 || t.Before(info.First) {
			info.First = t
		}
		if i == 0 || t.After(info.Last) {
			info.Last = t
		}
	}
	return info
}
