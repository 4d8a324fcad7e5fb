package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"

	"golang.org/x/exp/slog"
)

const itemColumns = `id, encrypted_data, type, folder_id, deleted_at, created_at, synced_at, local_updated_at, server_updated_at`

const upsertItemSQL = `
INSERT INTO vault_items (` + itemColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    encrypted_data    = excluded.encrypted_data,
    type              = excluded.type,
    folder_id         = excluded.folder_id,
    deleted_at        = excluded.deleted_at,
    created_at        = excluded.created_at,
    synced_at         = excluded.synced_at,
    local_updated_at  = excluded.local_updated_at,
    server_updated_at = excluded.server_updated_at`

const folderColumns = `id, name, created_at, synced_at, local_updated_at`

const upsertFolderSQL = `
INSERT INTO folders (` + folderColumns + `)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name             = excluded.name,
    created_at       = excluded.created_at,
    synced_at        = excluded.synced_at,
    local_updated_at = excluded.local_updated_at`

// RecordRepository хранит элементы и папки. Локальные мутации ставят запись в очередь
// в той же транзакции, загрузка с сервера (BulkUpsert*) очередь не трогает.
type RecordRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewRecordRepository(db *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With(slog.String("component", "record_repository")),
	}
}

func (r *RecordRepository) UpsertItem(ctx context.Context, item *record.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return apperr.Wrap(apperr.ErrSerialization, "item snapshot", err)
	}

	return r.db.withTx(ctx, "upsert item", func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "vault_items", item.ID)
		if err != nil {
			return err
		}
		if err := execUpsertItem(ctx, tx, item); err != nil {
			return fmt.Errorf("ошибка сохранения элемента: %w", err)
		}

		op := outbox.OpUpdate
		if !exists {
			op = outbox.OpCreate
		}
		return enqueue(ctx, tx, op, record.KindItem, item.ID, payload, r.db.now())
	})
}

func (r *RecordRepository) GetItem(ctx context.Context, id string) (*record.Item, error) {
	var item record.Item
	err := r.db.withTx(ctx, "get item", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM vault_items WHERE id = ?`, id)
		var err error
		item, err = scanItem(row)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound(fmt.Sprintf("элемент %s не найден", id))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListActiveItems - элементы вне корзины, сначала недавно измененные
func (r *RecordRepository) ListActiveItems(ctx context.Context) ([]record.Item, error) {
	return r.queryItems(ctx, "list active items",
		`SELECT `+itemColumns+` FROM vault_items WHERE deleted_at IS NULL ORDER BY local_updated_at DESC, id`)
}

// ListTrashedItems - корзина, сначала недавно удаленные
func (r *RecordRepository) ListTrashedItems(ctx context.Context) ([]record.Item, error) {
	return r.queryItems(ctx, "list trashed items",
		`SELECT `+itemColumns+` FROM vault_items WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC, id`)
}

func (r *RecordRepository) ListUnsyncedItems(ctx context.Context) ([]record.Item, error) {
	return r.queryItems(ctx, "list unsynced items",
		`SELECT `+itemColumns+` FROM vault_items
         WHERE synced_at IS NULL OR local_updated_at > synced_at
         ORDER BY local_updated_at`)
}

func (r *RecordRepository) SoftDeleteItem(ctx context.Context, id string) error {
	return r.setDeletedAt(ctx, "soft delete item", id, true)
}

func (r *RecordRepository) RestoreItem(ctx context.Context, id string) error {
	return r.setDeletedAt(ctx, "restore item", id, false)
}

func (r *RecordRepository) setDeletedAt(ctx context.Context, op, id string, deleted bool) error {
	return r.db.withTx(ctx, op, func(tx *sql.Tx) error {
		now := r.db.now()
		deletedAt := sql.NullString{}
		if deleted {
			deletedAt = sql.NullString{String: formatTime(now), Valid: true}
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE vault_items SET deleted_at = ?, local_updated_at = ? WHERE id = ?`,
			deletedAt, formatTime(now), id)
		if err != nil {
			return err
		}
		if err := affectedOne(res, fmt.Sprintf("элемент %s не найден", id)); err != nil {
			return err
		}
		return enqueue(ctx, tx, outbox.OpUpdate, record.KindItem, id, nil, now)
	})
}

func (r *RecordRepository) PurgeItem(ctx context.Context, id string) error {
	return r.db.withTx(ctx, "purge item", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM vault_items WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := affectedOne(res, fmt.Sprintf("элемент %s не найден", id)); err != nil {
			return err
		}
		return enqueue(ctx, tx, outbox.OpDelete, record.KindItem, id, nil, r.db.now())
	})
}

func (r *RecordRepository) UpsertFolder(ctx context.Context, folder *record.Folder) error {
	payload, err := json.Marshal(folder)
	if err != nil {
		return apperr.Wrap(apperr.ErrSerialization, "folder snapshot", err)
	}

	return r.db.withTx(ctx, "upsert folder", func(tx *sql.Tx) error {
		exists, err := rowExists(ctx, tx, "folders", folder.ID)
		if err != nil {
			return err
		}
		if err := execUpsertFolder(ctx, tx, folder); err != nil {
			return fmt.Errorf("ошибка сохранения папки: %w", err)
		}

		op := outbox.OpUpdate
		if !exists {
			op = outbox.OpCreate
		}
		return enqueue(ctx, tx, op, record.KindFolder, folder.ID, payload, r.db.now())
	})
}

func (r *RecordRepository) GetFolder(ctx context.Context, id string) (*record.Folder, error) {
	var folder record.Folder
	err := r.db.withTx(ctx, "get folder", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)
		var err error
		folder, err = scanFolder(row)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound(fmt.Sprintf("папка %s не найдена", id))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *RecordRepository) ListFolders(ctx context.Context) ([]record.Folder, error) {
	return r.queryFolders(ctx, "list folders", `SELECT `+folderColumns+` FROM folders ORDER BY name, id`)
}

func (r *RecordRepository) ListUnsyncedFolders(ctx context.Context) ([]record.Folder, error) {
	return r.queryFolders(ctx, "list unsynced folders",
		`SELECT `+folderColumns+` FROM folders
         WHERE synced_at IS NULL OR local_updated_at > synced_at
         ORDER BY local_updated_at`)
}

// DeleteFolder удаляет папку и отвязывает от нее элементы
func (r *RecordRepository) DeleteFolder(ctx context.Context, id string) error {
	return r.db.withTx(ctx, "delete folder", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE vault_items SET folder_id = NULL WHERE folder_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if err := affectedOne(res, fmt.Sprintf("папка %s не найдена", id)); err != nil {
			return err
		}
		return enqueue(ctx, tx, outbox.OpDelete, record.KindFolder, id, nil, r.db.now())
	})
}

// MarkSynced отмечает подтверждение сервера. Отсутствующая запись не считается ошибкой.
func (r *RecordRepository) MarkSynced(ctx context.Context, kind record.EntityKind, id string, at time.Time) error {
	return r.db.withTx(ctx, "mark synced", func(tx *sql.Tx) error {
		ts := formatTime(at)
		switch kind {
		case record.KindItem:
			_, err := tx.ExecContext(ctx,
				`UPDATE vault_items SET synced_at = ?, server_updated_at = ? WHERE id = ?`, ts, ts, id)
			return err
		case record.KindFolder:
			_, err := tx.ExecContext(ctx, `UPDATE folders SET synced_at = ? WHERE id = ?`, ts, id)
			return err
		default:
			return apperr.InvalidOperation(fmt.Sprintf("неизвестный вид записи %q", kind))
		}
	})
}

// BulkUpsertItems применяет пакет с сервера целиком или не применяет вовсе
func (r *RecordRepository) BulkUpsertItems(ctx context.Context, items []record.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.withTx(ctx, "bulk upsert items", func(tx *sql.Tx) error {
		for i := range items {
			if err := execUpsertItem(ctx, tx, &items[i]); err != nil {
				return fmt.Errorf("элемент %s: %w", items[i].ID, err)
			}
		}
		r.log.Debug("элементы с сервера применены", slog.Int("count", len(items)))
		return nil
	})
}

func (r *RecordRepository) BulkUpsertFolders(ctx context.Context, folders []record.Folder) error {
	if len(folders) == 0 {
		return nil
	}
	return r.db.withTx(ctx, "bulk upsert folders", func(tx *sql.Tx) error {
		for i := range folders {
			if err := execUpsertFolder(ctx, tx, &folders[i]); err != nil {
				return fmt.Errorf("папка %s: %w", folders[i].ID, err)
			}
		}
		return nil
	})
}

func (r *RecordRepository) queryItems(ctx context.Context, op, query string) ([]record.Item, error) {
	var items []record.Item
	err := r.db.withTx(ctx, op, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	return items, err
}

func (r *RecordRepository) queryFolders(ctx context.Context, op, query string) ([]record.Folder, error) {
	var folders []record.Folder
	err := r.db.withTx(ctx, op, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			folder, err := scanFolder(rows)
			if err != nil {
				return err
			}
			folders = append(folders, folder)
		}
		return rows.Err()
	})
	return folders, err
}

func execUpsertItem(ctx context.Context, tx *sql.Tx, item *record.Item) error {
	_, err := tx.ExecContext(ctx, upsertItemSQL,
		item.ID,
		item.EncryptedData,
		string(item.Type),
		nullString(item.FolderID),
		formatNullTime(item.DeletedAt),
		formatTime(item.CreatedAt),
		formatNullTime(item.SyncedAt),
		formatTime(item.LocalUpdatedAt),
		formatNullTime(item.ServerUpdatedAt),
	)
	return err
}

func execUpsertFolder(ctx context.Context, tx *sql.Tx, folder *record.Folder) error {
	_, err := tx.ExecContext(ctx, upsertFolderSQL,
		folder.ID,
		folder.Name,
		formatTime(folder.CreatedAt),
		formatNullTime(folder.SyncedAt),
		formatTime(folder.LocalUpdatedAt),
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (record.Item, error) {
	var (
		item                                         record.Item
		typ, createdAt, localUpdatedAt               string
		folderID, deletedAt, syncedAt, serverUpdated sql.NullString
	)
	if err := row.Scan(&item.ID, &item.EncryptedData, &typ, &folderID, &deletedAt,
		&createdAt, &syncedAt, &localUpdatedAt, &serverUpdated); err != nil {
		return item, err
	}

	item.Type = record.ItemType(typ)
	item.FolderID = stringPtr(folderID)

	var err error
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return item, fmt.Errorf("created_at: %w", err)
	}
	if item.LocalUpdatedAt, err = parseTime(localUpdatedAt); err != nil {
		return item, fmt.Errorf("local_updated_at: %w", err)
	}
	if item.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return item, fmt.Errorf("deleted_at: %w", err)
	}
	if item.SyncedAt, err = parseNullTime(syncedAt); err != nil {
		return item, fmt.Errorf("synced_at: %w", err)
	}
	if item.ServerUpdatedAt, err = parseNullTime(serverUpdated); err != nil {
		return item, fmt.Errorf("server_updated_at: %w", err)
	}
	return item, nil
}

func scanFolder(row scanner) (record.Folder, error) {
	var (
		folder                    record.Folder
		createdAt, localUpdatedAt string
		syncedAt                  sql.NullString
	)
	if err := row.Scan(&folder.ID, &folder.Name, &createdAt, &syncedAt, &localUpdatedAt); err != nil {
		return folder, err
	}

	var err error
	if folder.CreatedAt, err = parseTime(createdAt); err != nil {
		return folder, fmt.Errorf("created_at: %w", err)
	}
	if folder.LocalUpdatedAt, err = parseTime(localUpdatedAt); err != nil {
		return folder, fmt.Errorf("local_updated_at: %w", err)
	}
	if folder.SyncedAt, err = parseNullTime(syncedAt); err != nil {
		return folder, fmt.Errorf("synced_at: %w", err)
	}
	return folder, nil
}

func rowExists(ctx context.Context, tx *sql.Tx, table, id string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}
