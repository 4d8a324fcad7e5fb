package record

import "time"

// ItemDTO - строка таблицы vault_items на сервере.
// updated_at выставляет сервер, при отправке поле опускается.
type ItemDTO struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	EncryptedData string     `json:"encrypted_data"`
	Type          string     `json:"type"`
	FolderID      *string    `json:"folder_id"`
	DeletedAt     *time.Time `json:"deleted_at"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// FolderDTO - строка таблицы folders на сервере
type FolderDTO struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ToDTO готовит элемент к отправке от имени пользователя userID
func (i *Item) ToDTO(userID string) ItemDTO {
	createdAt := i.CreatedAt
	return ItemDTO{
		ID:            i.ID,
		UserID:        userID,
		EncryptedData: i.EncryptedData,
		Type:          string(i.Type),
		FolderID:      i.FolderID,
		DeletedAt:     i.DeletedAt,
		CreatedAt:     &createdAt,
	}
}

// ToItem переводит серверную строку в локальный вид.
// syncedAt - момент получения, updated_at сервера становится локальной отметкой изменения.
func (d *ItemDTO) ToItem(syncedAt time.Time) Item {
	updatedAt := serverTime(d.UpdatedAt, syncedAt)
	synced := syncedAt
	return Item{
		ID:              d.ID,
		EncryptedData:   d.EncryptedData,
		Type:            ItemType(d.Type),
		FolderID:        d.FolderID,
		DeletedAt:       d.DeletedAt,
		CreatedAt:       serverTime(d.CreatedAt, updatedAt),
		SyncedAt:        &synced,
		LocalUpdatedAt:  updatedAt,
		ServerUpdatedAt: &updatedAt,
	}
}

func (f *Folder) ToDTO(userID string) FolderDTO {
	createdAt := f.CreatedAt
	return FolderDTO{
		ID:        f.ID,
		UserID:    userID,
		Name:      f.Name,
		CreatedAt: &createdAt,
	}
}

func (d *FolderDTO) ToFolder(syncedAt time.Time) Folder {
	updatedAt := serverTime(d.UpdatedAt, syncedAt)
	synced := syncedAt
	return Folder{
		ID:             d.ID,
		Name:           d.Name,
		CreatedAt:      serverTime(d.CreatedAt, updatedAt),
		SyncedAt:       &synced,
		LocalUpdatedAt: updatedAt,
	}
}

func serverTime(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return t.UTC()
}

// CreateItemRequest - данные для нового элемента
type CreateItemRequest struct {
	EncryptedData string   `json:"encrypted_data"`
	Type          ItemType `json:"type"`
	FolderID      *string  `json:"folder_id,omitempty"`
}

// UpdateItemRequest полностью заменяет содержимое элемента
type UpdateItemRequest struct {
	EncryptedData string   `json:"encrypted_data"`
	Type          ItemType `json:"type"`
	FolderID      *string  `json:"folder_id,omitempty"`
}

type FolderRequest struct {
	Name string `json:"name"`
}
