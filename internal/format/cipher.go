package format

import (
	"fmt"
	"unicode/utf8"
)

// cipherBias is 255 - 1: decoded = 255 - encoded - position - 1 (mod 256).
const cipherBias = 0xFE

// Transform applies the positional text cipher to src, numbering positions
// from zero. The transform is its own inverse.
func Transform(src []byte) []byte {
	return TransformAt(src, 0)
}

// TransformAt applies the cipher with positions numbered from start. Byte
// arithmetic wraps modulo 256, which is exactly the format's rule.
func TransformAt(src []byte, start int) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		out[i] = cipherBias - b - byte(start+i)
	}
	return out
}

// DecodeText deciphers encoded message text and validates it as UTF-8.
func DecodeText(encoded []byte) (string, error) {
	plain := Transform(encoded)
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("text of %d bytes: %w", len(encoded), ErrInvalidText)
	}
	return string(plain), nil
}
