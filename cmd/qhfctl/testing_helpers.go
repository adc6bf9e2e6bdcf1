package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joshuapare/qhfkit/internal/config"
	"github.com/joshuapare/qhfkit/internal/testutil"
)

// testHistoryPath writes the fixture conversation to a temp file.
func testHistoryPath(t *testing.T) string {
	t.Helper()
	return testutil.WriteContainer(t, testutil.FixtureUIN+".qhf", testutil.Conversation().Bytes())
}

// resetState restores globals that commands read.
func resetState(t *testing.T) {
	t.Helper()
	quiet = false
	verbose = false
	jsonOut = false
	cfg = config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	convertStdout = false
	convertFormat = "text"
	convertOwner = ""
	convertOutputDir = ""
	showRaw = false
	archiveDB = ""
	now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	defer func() { stdout = orig }()

	err := fn()
	return buf.String(), err
}

// withInput feeds lines to commands reading stdin.
func withInput(t *testing.T, input string) {
	t.Helper()
	orig := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = orig })
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}

// dirEntries lists file names in dir.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
