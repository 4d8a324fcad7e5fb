package client

import (
	"context"
	"errors"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/sync"
)

// TriggerSync запускает цикл синхронизации по запросу пользователя
func (a *App) TriggerSync(ctx context.Context) (*sync.Result, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}

	res, err := a.engine.Sync(ctx)
	if err != nil && errors.Is(err, apperr.ErrNetwork) {
		return res, apperr.Wrap(apperr.ErrNetworkUnavailable, "сервер недоступен, изменения сохранены локально", err)
	}
	return res, err
}

func (a *App) SyncStatus(ctx context.Context) (sync.Status, error) {
	return a.engine.Status(ctx)
}

func (a *App) CheckConnectivity(ctx context.Context) bool {
	return a.engine.CheckConnectivity(ctx)
}

// RunAutoSync синхронизирует по интервалу до отмены ctx.
// Фоновая синхронизация не зависит от блокировки: она не раскрывает данные.
func (a *App) RunAutoSync(ctx context.Context) error {
	return a.engine.Run(ctx)
}
