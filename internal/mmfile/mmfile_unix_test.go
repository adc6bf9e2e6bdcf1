//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadOnlyUnix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.qhf")
	want := []byte{'Q', 'H', 'F', 0x03, 0x42}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, release, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != len(want) {
		t.Fatalf("len mismatch: got %d want %d", len(data), len(want))
	}
	for i, b := range want {
		if data[i] != b {
			t.Fatalf("byte %d mismatch: got 0x%x want 0x%x", i, data[i], b)
		}
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestMapReadOnlyUnixZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.qhf")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, release, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
	if release == nil {
		t.Fatalf("expected release function")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestMapRejectsDirectory(t *testing.T) {
	if _, _, err := Map(t.TempDir()); err == nil {
		t.Fatalf("expected error mapping a directory")
	}
}

func TestMapMissing(t *testing.T) {
	if _, _, err := Map(filepath.Join(t.TempDir(), "missing.qhf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
