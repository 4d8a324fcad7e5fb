package record

import "context"

// Repository - локальное хранилище записей. Каждая мутация фиксируется вместе
// с записью в очереди исходящих изменений в одной транзакции.
type Repository interface {
	UpsertItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListActiveItems(ctx context.Context) ([]Item, error)
	ListTrashedItems(ctx context.Context) ([]Item, error)
	ListUnsyncedItems(ctx context.Context) ([]Item, error)
	SoftDeleteItem(ctx context.Context, id string) error
	RestoreItem(ctx context.Context, id string) error
	PurgeItem(ctx context.Context, id string) error

	UpsertFolder(ctx context.Context, folder *Folder) error
	GetFolder(ctx context.Context, id string) (*Folder, error)
	ListFolders(ctx context.Context) ([]Folder, error)
	ListUnsyncedFolders(ctx context.Context) ([]Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}
