package qhf

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshuapare/qhfkit/internal/transcript"
	"github.com/joshuapare/qhfkit/internal/writer"
)

// RenderOptions controls transcript rendering.
type RenderOptions = transcript.Options

// Document is the JSON form of a history.
type Document = transcript.Document

// Sink receives a rendered document.
type Sink = writer.Sink

// DefaultOwnerLabel names the owner on sent messages.
const DefaultOwnerLabel = transcript.DefaultOwnerLabel

// DefaultTimeLayout formats message times in transcripts.
const DefaultTimeLayout = transcript.DefaultTimeLayout

// FilenameTimeLayout formats the timestamp part of derived transcript names.
const FilenameTimeLayout = "2006-01-02 15-04-05"

// Render writes the plain-text transcript of h to w.
func Render(w io.Writer, h *History, opts RenderOptions) error {
	return transcript.WriteText(w, h, opts)
}

// RenderJSON writes h as an indented JSON document.
func RenderJSON(w io.Writer, h *History, opts RenderOptions) error {
	return transcript.WriteJSON(w, h, opts)
}

// NewDocument converts h for custom serialization.
func NewDocument(h *History, opts RenderOptions) Document {
	return transcript.NewDocument(h, opts)
}

// OutputFilename derives the transcript name "<uin> - <time>.txt".
func OutputFilename(h *History, now time.Time) string {
	return fmt.Sprintf("%s - %s.txt", safeName(h.UIN()), now.Format(FilenameTimeLayout))
}

// WriteTranscript renders h and writes it atomically to
// dir/OutputFilename(h, now). It returns the written path.
func WriteTranscript(h *History, dir string, now time.Time, opts RenderOptions) (string, error) {
	path := filepath.Join(dir, OutputFilename(h, now))
	var buf bytes.Buffer
	if err := Render(&buf, h, opts); err != nil {
		return "", fmt.Errorf("render transcript: %w", err)
	}
	if err := WriteDocument(&writer.FileWriter{Path: path}, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDocument hands a rendered document to sink.
func WriteDocument(sink Sink, doc []byte) error {
	if err := sink.WriteDocument(doc); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// safeName keeps a UIN usable as a file name component.
func safeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, s)
	if s == "" || s == "." || s == ".." {
		return "unknown"
	}
	return s
}
