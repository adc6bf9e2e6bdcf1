package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshuapare/qhfkit/internal/logger"
	"github.com/joshuapare/qhfkit/pkg/qhf"
)

// errNotQHF is reported when a file fails the magic check; nothing is written
// for such a file.
var errNotQHF = errors.New("this file is not QHF format or corrupted")

// now is swapped by tests.
var now = time.Now

// loadHistory checks the magic before parsing so a foreign file is rejected
// without reading it whole.
func loadHistory(path string, trace bool) (*qhf.History, error) {
	ok, err := qhf.DetectFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("magic mismatch", "path", path)
		return nil, fmt.Errorf("%s: %w", path, errNotQHF)
	}
	opts := cfg.ParseOptions()
	opts.TraceCursor = trace
	h, err := qhf.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("history parsed", "path", path, "uin", h.UIN(), "messages", h.MsgQuantity())
	return h, nil
}

// formatTime renders t in the configured zone and layout.
func formatTime(t time.Time) string {
	ro := cfg.RenderOptions()
	layout := ro.TimeLayout
	if layout == "" {
		layout = qhf.DefaultTimeLayout
	}
	if ro.Location != nil {
		t = t.In(ro.Location)
	}
	return t.Format(layout)
}

func ownerLabel() string {
	if cfg.OwnerLabel == "" {
		return qhf.DefaultOwnerLabel
	}
	return cfg.OwnerLabel
}
