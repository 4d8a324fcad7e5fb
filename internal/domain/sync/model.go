package sync

import (
	"time"

	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"
)

// Status - текущее состояние синхронизации, вычисляется на лету
type Status struct {
	IsSyncing      bool       `json:"is_syncing"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	PendingChanges int        `json:"pending_changes"`
	IsOnline       bool       `json:"is_online"`
}

// Result - итог одного цикла синхронизации
type Result struct {
	// InFlight выставлен, если цикл уже шел и новый не запускался
	InFlight      bool          `json:"in_flight"`
	Pushed        int           `json:"pushed"`
	PulledFolders int           `json:"pulled_folders"`
	PulledItems   int           `json:"pulled_items"`
	Errors        []PushError   `json:"errors,omitempty"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Duration      time.Duration `json:"duration"`
	Status        Status        `json:"status"`
}

// PushError - неудачная отправка одной записи очереди. Запись остается в очереди.
type PushError struct {
	SequenceID int64             `json:"sequence_id"`
	RecordID   string            `json:"record_id"`
	Kind       record.EntityKind `json:"entity_kind"`
	Operation  outbox.Operation  `json:"operation"`
	Error      string            `json:"error"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Config - параметры движка синхронизации
type Config struct {
	// Timeout ограничивает один цикл целиком
	Timeout time.Duration
	// Interval - период автоматической синхронизации
	Interval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:  60 * time.Second,
		Interval: 5 * time.Minute,
	}
}
