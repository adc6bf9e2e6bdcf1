package format

import "errors"

var (
	// ErrSignatureMismatch indicates the buffer does not start with "QHF".
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a header field.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrRecordTruncated indicates a record extent or its text span runs past
	// the bytes available to it.
	ErrRecordTruncated = errors.New("format: truncated record")
	// ErrInvalidText indicates deciphered text is not valid UTF-8.
	ErrInvalidText = errors.New("format: invalid utf-8 text")
)
