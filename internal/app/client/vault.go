package client

import (
	"context"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/record"
	"gophvault/internal/domain/settings"
)

func (a *App) CreateItem(ctx context.Context, req record.CreateItemRequest) (*record.Item, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.CreateItem(ctx, req)
}

func (a *App) UpdateItem(ctx context.Context, id string, req record.UpdateItemRequest) (*record.Item, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.UpdateItem(ctx, id, req)
}

// DeleteItem переносит элемент в корзину
func (a *App) DeleteItem(ctx context.Context, id string) error {
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	return a.records.DeleteItem(ctx, id)
}

func (a *App) RestoreItem(ctx context.Context, id string) error {
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	return a.records.RestoreItem(ctx, id)
}

// PurgeItem удаляет элемент безвозвратно, в том числе на сервере
func (a *App) PurgeItem(ctx context.Context, id string) error {
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	return a.records.PurgeItem(ctx, id)
}

func (a *App) GetItem(ctx context.Context, id string) (*record.Item, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.GetItem(ctx, id)
}

func (a *App) ListItems(ctx context.Context) ([]record.Item, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.ListItems(ctx)
}

func (a *App) ListTrash(ctx context.Context) ([]record.Item, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.ListTrash(ctx)
}

func (a *App) CreateFolder(ctx context.Context, req record.FolderRequest) (*record.Folder, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.CreateFolder(ctx, req)
}

func (a *App) UpdateFolder(ctx context.Context, id string, req record.FolderRequest) (*record.Folder, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.UpdateFolder(ctx, id, req)
}

func (a *App) DeleteFolder(ctx context.Context, id string) error {
	if err := a.ensureUnlocked(ctx); err != nil {
		return err
	}
	return a.records.DeleteFolder(ctx, id)
}

func (a *App) ListFolders(ctx context.Context) ([]record.Folder, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.ListFolders(ctx)
}

// ListUnsynced - диагностика: записи, еще не подтвержденные сервером
func (a *App) ListUnsynced(ctx context.Context) (*record.Unsynced, error) {
	if err := a.ensureUnlocked(ctx); err != nil {
		return nil, err
	}
	return a.records.Unsynced(ctx)
}

// Settings не содержат данных хранилища и доступны без разблокировки
func (a *App) Settings(ctx context.Context) (settings.Settings, error) {
	return a.store.GetSettings(ctx)
}

func (a *App) SaveSettings(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	if err := s.Validate(); err != nil {
		return s, apperr.Wrap(apperr.ErrInvalidOperation, "некорректные настройки", err)
	}
	if err := a.store.SaveSettings(ctx, s); err != nil {
		return s, err
	}
	return s, nil
}
