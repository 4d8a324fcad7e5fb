package sync

import (
	"context"
	"time"

	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"
	"gophvault/internal/domain/session"
)

// Store - часть локального хранилища, нужная движку
type Store interface {
	ListPending(ctx context.Context) ([]outbox.Entry, error)
	Dequeue(ctx context.Context, sequenceID int64) error
	ClearOutbox(ctx context.Context) error
	CountPending(ctx context.Context) (int, error)

	GetItem(ctx context.Context, id string) (*record.Item, error)
	GetFolder(ctx context.Context, id string) (*record.Folder, error)
	MarkSynced(ctx context.Context, kind record.EntityKind, id string, at time.Time) error
	BulkUpsertItems(ctx context.Context, items []record.Item) error
	BulkUpsertFolders(ctx context.Context, folders []record.Folder) error
}

type Sessions interface {
	Current(ctx context.Context) (*session.Session, error)
	EnsureValid(ctx context.Context, s *session.Session) (*session.Session, error)
	UpdateLastSync(ctx context.Context, at time.Time) error
}

// Remote - REST-поверхность сервера. Upsert обязан быть идемпотентным.
type Remote interface {
	UpsertItem(ctx context.Context, accessToken string, item record.ItemDTO) error
	UpsertFolder(ctx context.Context, accessToken string, folder record.FolderDTO) error
	Delete(ctx context.Context, accessToken string, kind record.EntityKind, id string) error
	ListFolders(ctx context.Context, accessToken, userID string, since *time.Time) ([]record.FolderDTO, error)
	ListItems(ctx context.Context, accessToken, userID string, since *time.Time) ([]record.ItemDTO, error)
	Ping(ctx context.Context) (bool, error)
}
