/*
Package qhf recovers conversations from QIP ".qhf" chat-history containers.

# Quick Start

Convert a history file to a plain-text transcript next to the working
directory:

	h, err := qhf.Open("123456.qhf", qhf.ParseOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	path, err := qhf.WriteTranscript(h, "", time.Now(), qhf.RenderOptions{})

# Container Layout

A container starts with the "QHF" magic, carries the remote participant's
UIN and nick at fixed offsets, and is followed by a stream of
self-delimiting records, one per message. Message text is obfuscated with a
positional byte cipher and decoded on first access.

# Errors

Structural problems abort the parse entirely:

	errors.Is(err, qhf.ErrNotQHF)          // bad magic or short header
	errors.Is(err, qhf.ErrTruncatedRecord) // a record runs past the buffer

Lookups outside [1, MsgQuantity] return ErrOutOfRange. Text that is not
valid UTF-8 after deciphering affects only its own message: Message.Text
returns the placeholder and Message.DecodeText returns an ErrDecode error.
*/
package qhf
