package qhf

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/qhfkit/internal/format"
	"github.com/joshuapare/qhfkit/internal/reader"
	"github.com/joshuapare/qhfkit/pkg/types"
)

// Re-exported entities so callers need a single import.
type (
	History      = types.History
	Message      = types.Message
	Info         = types.Info
	TraceEntry   = types.TraceEntry
	ParseOptions = types.ParseOptions
	Error        = types.Error
	ErrKind      = types.ErrKind
)

// Typed error sentinels; match with errors.Is.
var (
	ErrNotQHF          = types.ErrNotQHF
	ErrTruncatedRecord = types.ErrTruncatedRecord
	ErrOutOfRange      = types.ErrOutOfRange
	ErrDecode          = types.ErrDecode
)

// DefaultPlaceholder replaces message text that fails to decode.
const DefaultPlaceholder = types.DefaultPlaceholder

// Detect reports whether b starts with the QHF magic. Callers must not parse
// a buffer that fails this check.
func Detect(b []byte) bool {
	return format.IsQHF(b)
}

// DetectFile reads only the magic of the file at path.
func DetectFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	magic := make([]byte, format.SignatureSize)
	if _, err := io.ReadFull(f, magic); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return format.IsQHF(magic), nil
}

// Parse builds a History from a complete container buffer.
//
// Example:
//
//	data, _ := os.ReadFile("123456.qhf")
//	h, err := qhf.Parse(data, qhf.ParseOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := h.Message(1)
//	fmt.Println(m.Text())
func Parse(b []byte, opts ParseOptions) (*History, error) {
	return reader.Parse(b, opts)
}

// Open loads and parses the container at path.
func Open(path string, opts ParseOptions) (*History, error) {
	return reader.Open(path, opts)
}
