package record

import (
	"context"
	"fmt"
	"time"

	"gophvault/internal/apperr"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer - операции над элементами и папками, доступные слою команд
type Servicer interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	RestoreItem(ctx context.Context, id string) error
	PurgeItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	ListTrash(ctx context.Context) ([]Item, error)

	CreateFolder(ctx context.Context, req FolderRequest) (*Folder, error)
	UpdateFolder(ctx context.Context, id string, req FolderRequest) (*Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	ListFolders(ctx context.Context) ([]Folder, error)

	Unsynced(ctx context.Context) (*Unsynced, error)
}

type Service struct {
	repo  Repository
	log   *slog.Logger
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With(slog.String("component", "record_service")),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewV7,
	}
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidOperation, "некорректный элемент", err)
	}
	if err := s.checkFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate item id: %w", err)
	}

	now := s.now()
	item := &Item{
		ID:             id.String(),
		EncryptedData:  req.EncryptedData,
		Type:           req.Type,
		FolderID:       req.FolderID,
		CreatedAt:      now,
		LocalUpdatedAt: now,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}

	s.log.Debug("элемент создан", slog.String("id", item.ID), slog.String("type", item.Type.String()))
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidOperation, "некорректный элемент", err)
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	item.EncryptedData = req.EncryptedData
	item.Type = req.Type
	item.FolderID = req.FolderID
	item.LocalUpdatedAt = s.now()

	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem переносит элемент в корзину
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.SoftDeleteItem(ctx, id)
}

func (s *Service) RestoreItem(ctx context.Context, id string) error {
	return s.repo.RestoreItem(ctx, id)
}

// PurgeItem удаляет элемент безвозвратно
func (s *Service) PurgeItem(ctx context.Context, id string) error {
	return s.repo.PurgeItem(ctx, id)
}

func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListActiveItems(ctx)
}

func (s *Service) ListTrash(ctx context.Context) ([]Item, error) {
	return s.repo.ListTrashedItems(ctx)
}

func (s *Service) CreateFolder(ctx context.Context, req FolderRequest) (*Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidOperation, "некорректная папка", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate folder id: %w", err)
	}

	now := s.now()
	folder := &Folder{
		ID:             id.String(),
		Name:           req.Name,
		CreatedAt:      now,
		LocalUpdatedAt: now,
	}
	if err := s.repo.UpsertFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *Service) UpdateFolder(ctx context.Context, id string, req FolderRequest) (*Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidOperation, "некорректная папка", err)
	}

	folder, err := s.repo.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	folder.Name = req.Name
	folder.LocalUpdatedAt = s.now()
	if err := s.repo.UpsertFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder удаляет папку, элементы из нее остаются без папки
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	return s.repo.DeleteFolder(ctx, id)
}

func (s *Service) ListFolders(ctx context.Context) ([]Folder, error) {
	return s.repo.ListFolders(ctx)
}

func (s *Service) Unsynced(ctx context.Context) (*Unsynced, error) {
	items, err := s.repo.ListUnsyncedItems(ctx)
	if err != nil {
		return nil, err
	}
	folders, err := s.repo.ListUnsyncedFolders(ctx)
	if err != nil {
		return nil, err
	}
	return &Unsynced{Items: items, Folders: folders}, nil
}

func (s *Service) checkFolder(ctx context.Context, folderID *string) error {
	if folderID == nil {
		return nil
	}
	if _, err := s.repo.GetFolder(ctx, *folderID); err != nil {
		return err
	}
	return nil
}
