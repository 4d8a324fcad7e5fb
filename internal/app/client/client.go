// Package client - контекст приложения: собирает хранилище, кэш ключей,
// клиент сервера и сервисы и проверяет блокировку хранилища перед каждой
// операцией с данными. CLI и локальный агент работают только через App.
package client

import (
	"context"
	"fmt"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/app/client/config"
	"gophvault/internal/app/client/credstore"
	"gophvault/internal/domain/record"
	"gophvault/internal/domain/session"
	"gophvault/internal/domain/settings"
	"gophvault/internal/domain/sync"
	"gophvault/internal/infrastructure/remote/supabase"
	"gophvault/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// ErrLocked возвращается любой операцией с данными, пока хранилище заблокировано
var ErrLocked = apperr.New(apperr.ErrVaultLocked, "vault is locked")

type App struct {
	config   *config.Config
	log      *slog.Logger
	store    *sqlite.LocalStore
	creds    *credstore.Store
	sessions *session.Service
	records  *record.Service
	engine   *sync.Engine
}

// New открывает локальное хранилище и собирает зависимости
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := sqlite.Open(cfg.DataPath, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	remote := supabase.New(supabase.Config{
		URL:     cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
		Timeout: cfg.HTTPTimeout,
	}, log)

	sessions := session.NewService(store, remote, log)

	return &App{
		config:   cfg,
		log:      log.With(slog.String("component", "app")),
		store:    store,
		creds:    credstore.New(cfg.CredentialsPath),
		sessions: sessions,
		records:  record.NewService(store, log),
		engine: sync.NewEngine(store, sessions, remote, log, sync.Config{
			Timeout:  cfg.SyncTimeout,
			Interval: cfg.SyncInterval,
		}),
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// IsLocked сообщает, заблокировано ли хранилище. Без сессии хранилище всегда заблокировано.
func (a *App) IsLocked(ctx context.Context) (bool, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		return true, err
	}
	if sess == nil {
		return true, nil
	}

	unlocked, err := a.creds.Unlocked(sess.Email)
	if err != nil {
		return true, err
	}
	return !unlocked, nil
}

// ensureUnlocked - проверка перед любым обращением к данным хранилища
func (a *App) ensureUnlocked(ctx context.Context) error {
	locked, err := a.IsLocked(ctx)
	if err != nil {
		return err
	}
	if locked {
		return ErrLocked
	}
	return nil
}

// autoLockTTL - срок билета разблокировки по настройке auto_lock_minutes
func (a *App) autoLockTTL(ctx context.Context) time.Duration {
	s, err := a.store.GetSettings(ctx)
	if err != nil {
		a.log.Warn("не удалось прочитать настройки, используем значения по умолчанию",
			slog.String("error", err.Error()))
		s = settings.Default()
	}
	return time.Duration(s.AutoLockMinutes) * time.Minute
}
