// Package outbox описывает очередь локальных изменений, еще не подтвержденных сервером.
package outbox

import (
	"encoding/json"
	"time"

	"gophvault/internal/domain/record"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Entry - одна неподтвержденная мутация. Записи обрабатываются строго по SequenceID.
type Entry struct {
	SequenceID int64             `json:"sequence_id"`
	Operation  Operation         `json:"operation"`
	Kind       record.EntityKind `json:"entity_kind"`
	RecordID   string            `json:"record_id"`
	Payload    json.RawMessage   `json:"payload,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
