package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Conversation returns a three-message container with a zero-sign record in
// the middle and stored numbers that repeat.
func Conversation() *Builder {
	return NewBuilder(FixtureUIN, FixtureNick).
		Add(Message{StoredNumber: 7, Timestamp: FixtureTime, Sent: true, Text: "hi"}).
		Add(Message{StoredNumber: 7, Timestamp: FixtureTime + 60, Text: "hello, Me", ZeroSign: true}).
		Add(Message{StoredNumber: 42, Timestamp: FixtureTime + 120, Sent: true, Text: "привет"})
}

// WriteContainer writes data under a fresh temporary directory and returns
// the file path.
func WriteContainer(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write container %s: %v", path, err)
	}
	return path
}
