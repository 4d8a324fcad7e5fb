// Package sqlite - локальное хранилище клиента: элементы, папки, очередь
// исходящих изменений, сессия и настройки в одном файле SQLite.
//
// Каждый публичный метод выполняется в одной транзакции. Соединение одно и
// дополнительно защищено мьютексом, так что чтения и записи не перемежаются.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/session"
	"gophvault/internal/infrastructure/migration"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

type Storage struct {
	db  *sql.DB
	log *slog.Logger
	mu  sync.Mutex
	now func() time.Time
}

// New открывает (или создает) базу по пути path и применяет миграции
func New(path string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, apperr.Wrap(apperr.ErrStorage, "create data dir", err)
	}

	if err := migration.NewMigration(path, migration.DefaultEngine).Up(); err != nil {
		return nil, apperr.Wrap(apperr.ErrStorage, "migrate", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStorage, "open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperr.Wrap(apperr.ErrStorage, "ping database", err)
	}

	log.Debug("локальное хранилище открыто", slog.String("path", path))

	return &Storage{
		db:  db,
		log: log.With(slog.String("component", "sqlite")),
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// withTx выполняет fn в транзакции под мьютексом хранилища
func (s *Storage) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.ErrStorage, op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", slog.String("op", op), slog.String("error", rbErr.Error()))
		}
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.ErrStorage, op, err)
	}
	return nil
}

// classify оставляет уже классифицированные ошибки как есть, остальные считает ошибками хранилища
func classify(op string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(apperr.ErrStorage, op, err)
}

// WipeAll удаляет все записи, очередь и сессию. Настройки сохраняются.
func (s *Storage) WipeAll(ctx context.Context) error {
	return s.withTx(ctx, "wipe all", func(tx *sql.Tx) error {
		return wipe(ctx, tx)
	})
}

// ReplaceUser в одной транзакции очищает данные прежнего пользователя и сохраняет сессию нового
func (s *Storage) ReplaceUser(ctx context.Context, sess *session.Session) error {
	return s.withTx(ctx, "replace user", func(tx *sql.Tx) error {
		if err := wipe(ctx, tx); err != nil {
			return err
		}
		if sess == nil {
			return apperr.InvalidOperation("нет сессии нового пользователя")
		}
		return saveSession(ctx, tx, sess)
	})
}

func wipe(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"vault_items", "folders", "sync_queue", "user_session"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("очистка %s: %w", table, err)
		}
	}
	return nil
}

func affectedOne(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(notFound)
	}
	return nil
}
