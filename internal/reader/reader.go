// Package reader turns a QHF buffer into a types.History. It runs the format
// detector, the header parser and the record cursor in a single pass and maps
// low-level format errors onto the typed errors of pkg/types.
package reader

import (
	"errors"
	"fmt"

	"github.com/joshuapare/qhfkit/internal/charset"
	"github.com/joshuapare/qhfkit/internal/format"
	"github.com/joshuapare/qhfkit/internal/logger"
	"github.com/joshuapare/qhfkit/internal/mmfile"
	"github.com/joshuapare/qhfkit/pkg/types"
)

// Open loads the container at path and parses it. The file mapping is
// released before Open returns; the History owns copies of everything it
// needs.
func Open(path string, opts types.ParseOptions) (*types.History, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, wrapIOErr(fmt.Errorf("open history: %w", err))
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("release mapping", "path", path, "err", err)
		}
	}()
	logger.Debug("history loaded", "path", path, "size", len(data))
	return Parse(data, opts)
}

// Parse builds a History from a complete container buffer. Any structural
// failure aborts the whole parse and no partial History is returned. Text
// that fails to decode is not a structural failure; it surfaces per message.
func Parse(b []byte, opts types.ParseOptions) (*types.History, error) {
	if !format.IsQHF(b) {
		return nil, types.ErrNotQHF
	}
	head, err := format.ParseHeader(b)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	dec, err := charset.New(opts.HeaderCharset)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: "header charset", Err: err}
	}
	uin, err := dec.Decode(head.UIN)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "undecodable uin", Err: err}
	}
	nick, err := dec.Decode(head.Nick)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "undecodable nick", Err: err}
	}
	logger.Debug("header parsed",
		"uin", uin,
		"nick", nick,
		"msg_quantity", head.MsgQuantity,
		"first_record", head.FirstRecordOffset,
	)

	msgs := make([]*types.Message, 0, capacityHint(head.MsgQuantity, len(b)-head.FirstRecordOffset))
	trace := newTraceCollector(opts.TraceCursor)
	zeroSign := 0

	cur := format.NewCursor(b, head.FirstRecordOffset)
	err = cur.Walk(head.MsgQuantity, func(seq int, ext format.Extent, raw []byte) error {
		rec, err := format.ParseRecord(raw)
		if err != nil {
			return fmt.Errorf("record %d at %d: %w", seq, ext.Start, err)
		}
		if ext.ZeroSign {
			zeroSign++
		}
		trace.record(seq, ext)
		logger.Debug("record",
			"seq", seq,
			"start", ext.Start,
			"block_size", ext.BlockSize,
			"zero_sign", ext.ZeroSign,
			"stored_number", rec.StoredNumber,
		)
		msgs = append(msgs, types.NewMessage(types.MessageData{
			Seq:          seq,
			StoredNumber: rec.StoredNumber,
			Timestamp:    rec.Timestamp,
			Sent:         rec.Sent,
			Encoded:      append([]byte(nil), rec.Text...),
			Offset:       ext.Start,
		}, opts.Placeholder))
		return nil
	})
	if err != nil {
		return nil, wrapFormatErr(err)
	}

	return types.NewHistory(types.HistoryData{
		UIN:               uin,
		Nick:              nick,
		MsgQuantity:       head.MsgQuantity,
		Messages:          msgs,
		FirstRecordOffset: head.FirstRecordOffset,
		Size:              len(b),
		ZeroSignRecords:   zeroSign,
		Trace:             trace.entries(),
	})
}

// capacityHint bounds the preallocation by what the remaining bytes could
// hold, since the declared quantity is untrusted.
func capacityHint(quantity uint32, remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	most := remaining/(format.RecordTextOffset-format.RecordZeroSignBackstep) + 1
	if uint64(quantity) < uint64(most) {
		return int(quantity)
	}
	return most
}

func wrapIOErr(err error) error {
	return &types.Error{Kind: types.ErrKindState, Msg: err.Error(), Err: err}
}

func wrapFormatErr(err error) error {
	switch {
	case errors.Is(err, format.ErrSignatureMismatch):
		return types.ErrNotQHF
	case errors.Is(err, format.ErrTruncated):
		return &types.Error{Kind: types.ErrKindFormat, Msg: "header truncated", Err: err}
	case errors.Is(err, format.ErrRecordTruncated):
		return &types.Error{Kind: types.ErrKindTruncated, Msg: "record truncated", Err: err}
	default:
		return &types.Error{Kind: types.ErrKindFormat, Msg: err.Error(), Err: err}
	}
}
