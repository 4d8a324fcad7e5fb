package sqlite

import (
	"golang.org/x/exp/slog"
)

// LocalStore объединяет репозитории над одним файлом базы
type LocalStore struct {
	*Storage
	*RecordRepository
	*OutboxRepository
	*SessionRepository
	*SettingsRepository
}

// Open открывает локальное хранилище по пути path
func Open(path string, log *slog.Logger) (*LocalStore, error) {
	s, err := New(path, log)
	if err != nil {
		return nil, err
	}

	return &LocalStore{
		Storage:            s,
		RecordRepository:   NewRecordRepository(s, log),
		OutboxRepository:   NewOutboxRepository(s, log),
		SessionRepository:  NewSessionRepository(s, log),
		SettingsRepository: NewSettingsRepository(s),
	}, nil
}
