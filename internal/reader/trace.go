package reader

import (
	"github.com/joshuapare/qhfkit/internal/format"
	"github.com/joshuapare/qhfkit/pkg/types"
)

// traceCollector keeps the cursor history. It's nil unless
// ParseOptions.TraceCursor is set, and every method is a no-op on nil.
type traceCollector struct {
	list []types.TraceEntry
}

func newTraceCollector(enabled bool) *traceCollector {
	if !enabled {
		return nil
	}
	return &traceCollector{}
}

func (tc *traceCollector) record(seq int, ext format.Extent) {
	if tc == nil {
		return
	}
	tc.list = append(tc.list, types.TraceEntry{
		Seq:       seq,
		Cursor:    ext.Cursor,
		Start:     ext.Start,
		End:       ext.End,
		BlockSize: ext.BlockSize,
		ZeroSign:  ext.ZeroSign,
	})
}

func (tc *traceCollector) entries() []types.TraceEntry {
	if tc == nil {
		return nil
	}
	return tc.list
}
