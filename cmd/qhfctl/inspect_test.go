package main

import (
	"testing"
)

func TestInspectCommand(t *testing.T) {
	resetState(t)

	output, err := captureOutput(t, func() error {
		return runInspect([]string{testHistoryPath(t)})
	})
	if err != nil {
		t.Fatalf("runInspect() error = %v\nOutput: %s", err, output)
	}
	assertContains(t, output, []string{
		`uin: "123456"`,
		`nick: "Alice"`,
		"msg_quantity: 3",
		"first_record_offset: 0x3B",
		"SEQ",
		"yes",
		"3 record(s), 1 zero-sign",
	})
}

func TestInspectJSON(t *testing.T) {
	resetState(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runInspect([]string{testHistoryPath(t)})
	})
	if err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"records"`, `"zero_sign": true`, `"block_size"`})
}
