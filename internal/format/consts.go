// Package format houses low-level decoders for the QHF chat-history
// container. Everything here works on an in-memory buffer, never allocates
// more than the caller asks for, and knows nothing about rendering or
// sender labels.
package format

// Signature is the three-byte magic at the start of every QHF container.
//
//	0x00  'Q' 'H' 'F'
var Signature = []byte{'Q', 'H', 'F'}

// Container header layout. All integers are big-endian and every offset is
// absolute from the start of the buffer.
//
//	Offset       Size      Description
//	-----------  --------  --------------------------------------------
//	 0           3         'Q' 'H' 'F'
//	34           4         Declared message count
//	44           2         UIN length (ul)
//	46           ul        UIN bytes
//	46+ul        2         Nick length (nl)
//	48+ul        nl        Nick bytes
//	48+ul+nl     ...       Record stream
const (
	SignatureSize = 3

	MsgQuantityOffset = 34
	UINLenOffset      = 44
	UINOffset         = 46

	// LenFieldSize is the width of the uin/nick length prefixes.
	LenFieldSize = 2

	// MinHeaderSize covers everything up to and including the UIN length.
	MinHeaderSize = UINOffset
)

// Record layout relative to the effective record start (after the zero-sign
// adjustment).
//
//	Offset  Size      Description
//	------  --------  ---------------------------------------------
//	 0      2         Sign
//	 2      4         Block size (payload, excludes these 6 bytes)
//	10      4         Stored message number
//	18      4         Timestamp (UNIX seconds, UTC)
//	26      1         Sent flag (nonzero = sent by owner)
//	31      4         Encoded text size
//	35      n         Encoded text
const (
	RecordSignSize         = 2
	RecordBlockSizeOffset  = 2
	RecordHeaderSize       = 6
	RecordMsgNumberOffset  = 10
	RecordTimestampOffset  = 18
	RecordSentOffset       = 26
	RecordMsgSizeOffset    = 31
	RecordTextOffset       = 35
	RecordMinPayloadSize   = RecordTextOffset - RecordHeaderSize
	RecordZeroSignBackstep = 1
)
