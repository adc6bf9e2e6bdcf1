package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/qhfkit/internal/testutil"
)

func TestInteractiveQuit(t *testing.T) {
	for _, input := range []string{"Q\n", "q\n", "\n", ""} {
		resetState(t)
		withInput(t, input)

		output, err := captureOutput(t, runInteractive)
		if err != nil {
			t.Errorf("input %q: error = %v", input, err)
		}
		assertContains(t, output, []string{"Enter path to the file or Q for quit:", "The program was completed"})
		if names := dirEntries(t, cfg.OutputDir); len(names) != 0 {
			t.Errorf("input %q: unexpected files %v", input, names)
		}
	}
}

func TestInteractiveConverts(t *testing.T) {
	resetState(t)
	path := testHistoryPath(t)
	missing := filepath.Join(t.TempDir(), "missing.qhf")
	withInput(t, missing+"\n"+path+"\n")

	output, err := captureOutput(t, runInteractive)
	if err != nil {
		t.Fatalf("runInteractive() error = %v\nOutput: %s", err, output)
	}
	assertContains(t, output, []string{
		"History conversation with Alice (123456)",
		"Contains 3 message(s)",
		"successfully written",
	})

	want := filepath.Join(cfg.OutputDir, "123456 - 2024-03-09 14-05-07.txt")
	got, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(got) != fixtureTranscript {
		t.Errorf("transcript mismatch\nGot:\n%s", got)
	}
}

func TestInteractiveRejectsForeignFile(t *testing.T) {
	resetState(t)
	bad := testutil.WriteContainer(t, "bad.qhf", []byte("MZ\x90\x00"))
	withInput(t, bad+"\n")

	output, err := captureOutput(t, runInteractive)
	if !errors.Is(err, errNotQHF) {
		t.Errorf("error = %v, want errNotQHF", err)
	}
	assertContains(t, output, []string{"This file is not QHF format or corrupted"})
	if names := dirEntries(t, cfg.OutputDir); len(names) != 0 {
		t.Errorf("unexpected files %v", names)
	}
}
