package record

import "time"

// Item - зашифрованный элемент хранилища в локальном кэше
type Item struct {
	ID              string     `json:"id"`
	EncryptedData   string     `json:"encrypted_data"`
	Type            ItemType   `json:"type"`
	FolderID        *string    `json:"folder_id,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SyncedAt        *time.Time `json:"synced_at,omitempty"`
	LocalUpdatedAt  time.Time  `json:"local_updated_at"`
	ServerUpdatedAt *time.Time `json:"server_updated_at,omitempty"`
}

// IsDeleted сообщает, находится ли элемент в корзине
func (i *Item) IsDeleted() bool {
	return i.DeletedAt != nil
}

// NeedsSync сообщает, есть ли у элемента неподтвержденные сервером изменения
func (i *Item) NeedsSync() bool {
	return needsSync(i.SyncedAt, i.LocalUpdatedAt)
}

// Folder - папка для группировки элементов. Папки удаляются сразу, без корзины.
type Folder struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	CreatedAt      time.Time  `json:"created_at"`
	SyncedAt       *time.Time `json:"synced_at,omitempty"`
	LocalUpdatedAt time.Time  `json:"local_updated_at"`
}

func (f *Folder) NeedsSync() bool {
	return needsSync(f.SyncedAt, f.LocalUpdatedAt)
}

func needsSync(syncedAt *time.Time, localUpdatedAt time.Time) bool {
	return syncedAt == nil || localUpdatedAt.After(*syncedAt)
}

// Unsynced - диагностический срез записей, расходящихся с сервером
type Unsynced struct {
	Items   []Item   `json:"items"`
	Folders []Folder `json:"folders"`
}
