// Package types defines the public entities produced by parsing a QHF
// chat-history container: the immutable History, its ordered Messages, and
// the typed errors every layer reports through.
//
// Design goals:
//   - Built once from a complete in-memory buffer; never mutated afterwards.
//   - Sequence numbers come from iteration order, never from stored fields.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (format/truncated/range/decode).
package types
