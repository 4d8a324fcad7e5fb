package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"

	"golang.org/x/exp/slog"
)

type OutboxRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewOutboxRepository(db *Storage, log *slog.Logger) *OutboxRepository {
	return &OutboxRepository{
		db:  db,
		log: log.With(slog.String("component", "outbox_repository")),
	}
}

// enqueue добавляет запись в очередь внутри уже открытой транзакции мутации
func enqueue(ctx context.Context, tx *sql.Tx, op outbox.Operation, kind record.EntityKind,
	id string, payload json.RawMessage, at time.Time) error {
	var p sql.NullString
	if len(payload) > 0 {
		p = sql.NullString{String: string(payload), Valid: true}
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO sync_queue (operation, entity_kind, record_id, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(op), string(kind), id, p, formatTime(at))
	return err
}

// ListPending возвращает очередь в порядке постановки
func (r *OutboxRepository) ListPending(ctx context.Context) ([]outbox.Entry, error) {
	var entries []outbox.Entry
	err := r.db.withTx(ctx, "list pending", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT sequence_id, operation, entity_kind, record_id, payload, created_at
             FROM sync_queue ORDER BY sequence_id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e              outbox.Entry
				op, kind, when string
				payload        sql.NullString
			)
			if err := rows.Scan(&e.SequenceID, &op, &kind, &e.RecordID, &payload, &when); err != nil {
				return err
			}
			e.Operation = outbox.Operation(op)
			e.Kind = record.EntityKind(kind)
			if payload.Valid {
				e.Payload = json.RawMessage(payload.String)
			}
			if e.CreatedAt, err = parseTime(when); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	return entries, err
}

// Dequeue удаляет запись. Повторное удаление не является ошибкой.
func (r *OutboxRepository) Dequeue(ctx context.Context, sequenceID int64) error {
	return r.db.withTx(ctx, "dequeue", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM sync_queue WHERE sequence_id = ?`, sequenceID)
		return err
	})
}

func (r *OutboxRepository) ClearOutbox(ctx context.Context) error {
	return r.db.withTx(ctx, "clear outbox", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM sync_queue`)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			r.log.Warn("очередь изменений очищена", slog.Int64("dropped", n))
		}
		return nil
	})
}

func (r *OutboxRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.withTx(ctx, "count pending", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_queue`).Scan(&n)
	})
	return n, err
}
