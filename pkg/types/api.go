package types

import (
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat     ErrKind = iota // bad "QHF" magic or a header too short for its fields
	ErrKindTruncated                 // a record extent or text span runs past its bytes
	ErrKindOutOfRange                // sequence number outside [1, msg_quantity]
	ErrKindDecode                    // deciphered text is not valid UTF-8
	ErrKindState                     // I/O or usage failure outside the container
)

// String returns a short label for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindTruncated:
		return "truncated"
	case ErrKindOutOfRange:
		return "out-of-range"
	case ErrKindDecode:
		return "decode"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrOutOfRange)
// holds for every out-of-range failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrNotQHF indicates the buffer lacks the "QHF" magic or its header is
	// inconsistent with the buffer length.
	ErrNotQHF = &Error{Kind: ErrKindFormat, Msg: "not a QHF history (bad header)"}
	// ErrTruncatedRecord indicates a record extends past the data available to it.
	ErrTruncatedRecord = &Error{Kind: ErrKindTruncated, Msg: "truncated record"}
	// ErrOutOfRange indicates a message lookup outside [1, msg_quantity].
	ErrOutOfRange = &Error{Kind: ErrKindOutOfRange, Msg: "message number out of range"}
	// ErrDecode indicates message text that does not decode to UTF-8.
	ErrDecode = &Error{Kind: ErrKindDecode, Msg: "could not decode message text"}
)

// -----------------------------------------------------------------------------
// Parse Options & Metadata
// -----------------------------------------------------------------------------

// DefaultPlaceholder replaces message text that fails to decode.
const DefaultPlaceholder = "Error while trying decode text"

// ParseOptions tunes how a container is parsed. The zero value is usable.
type ParseOptions struct {
	// HeaderCharset names the legacy code page tried when the UIN or nick is
	// not valid UTF-8 ("" = windows-1251, "none" = fail instead).
	HeaderCharset string

	// Placeholder replaces undecodable message text. Empty means
	// DefaultPlaceholder.
	Placeholder string

	// TraceCursor records every record's cursor position and extent,
	// available afterwards from History.Trace.
	TraceCursor bool
}

// Info summarises a parsed container.
type Info struct {
	UIN               string `json:"uin"`
	Nick              string `json:"nick"`
	MsgQuantity       uint32 `json:"msg_quantity"`
	FirstRecordOffset int    `json:"first_record_offset"`
	Size              int    `json:"size"`
	ZeroSignRecords   int    `json:"zero_sign_records"`
	DecodeFailures    int    `json:"decode_failures"`
	// First and Last are the earliest and latest message times; zero when
	// the container holds no messages.
	First time.Time `json:"first,omitempty"`
	Last  time.Time `json:"last,omitempty"`
}

// TraceEntry records where the cursor found one record.
type TraceEntry struct {
	Seq       int    `json:"seq"`
	Cursor    int    `json:"cursor"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	BlockSize uint32 `json:"block_size"`
	ZeroSign  bool   `json:"zero_sign"`
}
