package writer

// MemWriter captures a document in memory.
type MemWriter struct {
	Buf []byte
}

// WriteDocument stores a copy of buf.
func (w *MemWriter) WriteDocument(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}
