// Package transcript renders a parsed history as a plain-text transcript in
// the layout QIP's exporter used, or as a JSON document.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/joshuapare/qhfkit/internal/logger"
	"github.com/joshuapare/qhfkit/pkg/types"
)

const (
	// DefaultOwnerLabel names the history owner on sent messages.
	DefaultOwnerLabel = "Me"
	// DefaultTimeLayout renders message times.
	DefaultTimeLayout = "2006-01-02 15:04:05"
)

// Options controls rendering. The zero value uses the defaults above in UTC.
type Options struct {
	OwnerLabel string
	TimeLayout string
	// Location converts message times; nil means UTC.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.OwnerLabel == "" {
		o.OwnerLabel = DefaultOwnerLabel
	}
	if o.TimeLayout == "" {
		o.TimeLayout = DefaultTimeLayout
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// Header returns the transcript heading for h.
func Header(h *types.History) string {
	return fmt.Sprintf("History conversation with %s (%s)\nContains %d message(s)\n\n",
		h.Nick(), h.UIN(), h.MsgQuantity())
}

// WriteText renders h as a plain-text transcript: the heading, then one block
// per message in sequence order.
func WriteText(w io.Writer, h *types.History, opts Options) error {
	opts = opts.withDefaults()
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header(h)); err != nil {
		return err
	}
	for _, m := range h.Messages() {
		text := textOf(m)
		sender := m.Sender(opts.OwnerLabel, h.Nick())
		when := m.Time().In(opts.Location).Format(opts.TimeLayout)
		if _, err := fmt.Fprintf(bw, "-- %s (%s)\n%s\n\n", sender, when, text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Document is the JSON form of a history.
type Document struct {
	UIN         string            `json:"uin"`
	Nick        string            `json:"nick"`
	MsgQuantity uint32            `json:"msg_quantity"`
	Messages    []DocumentMessage `json:"messages"`
}

// DocumentMessage is one message of a Document.
type DocumentMessage struct {
	Seq          int       `json:"seq"`
	StoredNumber uint32    `json:"stored_number"`
	Timestamp    uint32    `json:"timestamp"`
	Time         time.Time `json:"time"`
	Sent         bool      `json:"sent"`
	Sender       string    `json:"sender"`
	Text         string    `json:"text"`
	DecodeError  string    `json:"decode_error,omitempty"`
}

// NewDocument converts h for JSON output.
func NewDocument(h *types.History, opts Options) Document {
	opts = opts.withDefaults()
	doc := Document{
		UIN:         h.UIN(),
		Nick:        h.Nick(),
		MsgQuantity: h.MsgQuantity(),
		Messages:    make([]DocumentMessage, 0, h.Len()),
	}
	for _, m := range h.Messages() {
		dm := DocumentMessage{
			Seq:          m.Seq(),
			StoredNumber: m.StoredNumber(),
			Timestamp:    m.Timestamp(),
			Time:         m.Time().In(opts.Location),
			Sent:         m.Sent(),
			Sender:       m.Sender(opts.OwnerLabel, h.Nick()),
			Text:         textOf(m),
		}
		if _, err := m.DecodeText(); err != nil {
			dm.DecodeError = err.Error()
		}
		doc.Messages = append(doc.Messages, dm)
	}
	return doc
}

// WriteJSON renders h as an indented JSON document.
func WriteJSON(w io.Writer, h *types.History, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(h, opts))
}

func textOf(m *types.Message) string {
	if _, err := m.DecodeText(); err != nil {
		logger.Warn("placeholder substituted", "seq", m.Seq(), "err", err)
	}
	return m.Text()
}
