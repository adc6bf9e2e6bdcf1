package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/qhfkit/pkg/types"
)

// HistoryRecord is an archived history row.
type HistoryRecord struct {
	ID             int64
	ImportID       string
	Source         string
	ImportedAt     time.Time
	UIN            string
	Nick           string
	MsgQuantity    uint32
	ContainerSize  int
	DecodeFailures int
}

// MessageRecord is an archived message row.
type MessageRecord struct {
	HistoryID    int64
	Seq          int
	StoredNumber uint32
	Time         time.Time
	Sent         bool
	Text         string
	DecodeFailed bool
}

// SaveHistory stores h and all of its messages in one transaction under a
// fresh import id. Undecodable text is stored as the placeholder with
// decode_failed set.
func (s *Store) SaveHistory(ctx context.Context, h *types.History, source string) (HistoryRecord, error) {
	rec := HistoryRecord{
		ImportID:      uuid.NewString(),
		Source:        source,
		ImportedAt:    time.Now().UTC().Truncate(time.Second),
		UIN:           h.UIN(),
		Nick:          h.Nick(),
		MsgQuantity:   h.MsgQuantity(),
		ContainerSize: h.Info().Size,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (import_id, source, imported_at) VALUES (?, ?, ?)`,
		rec.ImportID, rec.Source, rec.ImportedAt.Unix(),
	); err != nil {
		return HistoryRecord{}, fmt.Errorf("insert import: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO histories (import_id, uin, nick, msg_quantity, container_size) VALUES (?, ?, ?, ?, ?)`,
		rec.ImportID, rec.UIN, rec.Nick, int64(rec.MsgQuantity), rec.ContainerSize,
	)
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("insert history: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("history id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (history_id, seq, stored_number, timestamp, sent, text, decode_failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return HistoryRecord{}, fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range h.Messages() {
		_, decodeErr := m.DecodeText()
		failed := decodeErr != nil
		if failed {
			rec.DecodeFailures++
		}
		if _, err := stmt.ExecContext(ctx,
			rec.ID, m.Seq(), int64(m.StoredNumber()), int64(m.Timestamp()),
			boolToInt(m.Sent()), m.Text(), boolToInt(failed),
		); err != nil {
			return HistoryRecord{}, fmt.Errorf("insert message %d: %w", m.Seq(), err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE histories SET decode_failures = ? WHERE id = ?`, rec.DecodeFailures, rec.ID,
	); err != nil {
		return HistoryRecord{}, fmt.Errorf("update decode failures: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return HistoryRecord{}, fmt.Errorf("commit import: %w", err)
	}
	return rec, nil
}

const historyColumns = `h.id, h.import_id, i.source, i.imported_at, h.uin, h.nick, h.msg_quantity, h.container_size, h.decode_failures`

// ListHistories returns archived histories ordered by id.
func (s *Store) ListHistories(ctx context.Context) ([]HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+historyColumns+`
		 FROM histories h JOIN imports i ON i.import_id = h.import_id
		 ORDER BY h.id`)
	if err != nil {
		return nil, fmt.Errorf("list histories: %w", err)
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetHistory returns one archived history.
func (s *Store) GetHistory(ctx context.Context, id int64) (HistoryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+`
		 FROM histories h JOIN imports i ON i.import_id = h.import_id
		 WHERE h.id = ?`, id)
	rec, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return HistoryRecord{}, fmt.Errorf("history %d: %w", id, ErrNotFound)
	}
	return rec, err
}

// Messages returns the messages of a history in sequence order.
func (s *Store) Messages(ctx context.Context, historyID int64) ([]MessageRecord, error) {
	return s.queryMessages(ctx,
		`SELECT history_id, seq, stored_number, timestamp, sent, text, decode_failed
		 FROM messages WHERE history_id = ? ORDER BY seq`, historyID)
}

// Search returns messages whose text contains query, oldest first.
func (s *Store) Search(ctx context.Context, query string) ([]MessageRecord, error) {
	return s.queryMessages(ctx,
		`SELECT history_id, seq, stored_number, timestamp, sent, text, decode_failed
		 FROM messages WHERE decode_failed = 0 AND instr(text, ?) > 0
		 ORDER BY timestamp, history_id, seq`, query)
}

// DeleteImport removes an import with its histories and messages.
func (s *Store) DeleteImport(ctx context.Context, importID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM imports WHERE import_id = ?`, importID)
	if err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete import: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("import %s: %w", importID, ErrNotFound)
	}
	return nil
}

func (s *Store) queryMessages(ctx context.Context, query string, args ...any) ([]MessageRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []MessageRecord
	for rows.Next() {
		var (
			m         MessageRecord
			stored    int64
			timestamp int64
			sent      int
			failed    int
		)
		if err := rows.Scan(&m.HistoryID, &m.Seq, &stored, &timestamp, &sent, &m.Text, &failed); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.StoredNumber = uint32(stored)
		m.Time = time.Unix(timestamp, 0).UTC()
		m.Sent = sent != 0
		m.DecodeFailed = failed != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(row scanner) (HistoryRecord, error) {
	var (
		rec        HistoryRecord
		importedAt int64
		quantity   int64
	)
	if err := row.Scan(&rec.ID, &rec.ImportID, &rec.Source, &importedAt, &rec.UIN, &rec.Nick,
		&quantity, &rec.ContainerSize, &rec.DecodeFailures); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HistoryRecord{}, err
		}
		return HistoryRecord{}, fmt.Errorf("scan history: %w", err)
	}
	rec.ImportedAt = time.Unix(importedAt, 0).UTC()
	rec.MsgQuantity = uint32(quantity)
	return rec, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
