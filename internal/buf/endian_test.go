package buf

import "testing"

func TestBigEndianReaders(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9a}
	if got := U16BE(data); got != 0x1234 {
		t.Fatalf("U16BE=%#x want 0x1234", got)
	}
	if got := U32BE(data); got != 0x12345678 {
		t.Fatalf("U32BE=%#x want 0x12345678", got)
	}
	if got := U16BE(data[:1]); got != 0 {
		t.Fatalf("U16BE short buffer=%#x want 0", got)
	}
	if got := U32BE(data[:3]); got != 0 {
		t.Fatalf("U32BE short buffer=%#x want 0", got)
	}
}

func TestAtReaders(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x02}
	if v, ok := U16At(data, 0); !ok || v != 1 {
		t.Fatalf("U16At(0)=%d,%v want 1,true", v, ok)
	}
	if v, ok := U32At(data, 2); !ok || v != 2 {
		t.Fatalf("U32At(2)=%d,%v want 2,true", v, ok)
	}
	if _, ok := U32At(data, 3); ok {
		t.Fatalf("U32At should fail when reading past the end")
	}
	if _, ok := U16At(data, -1); ok {
		t.Fatalf("U16At should reject negative offset")
	}
}
