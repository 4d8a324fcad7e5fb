package vault

import (
	"context"

	"gophvault/internal/app/agent/api/http/httperr"
	"gophvault/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Servicer - операции с данными хранилища, каждая проверяет блокировку
type Servicer interface {
	CreateItem(ctx context.Context, req record.CreateItemRequest) (*record.Item, error)
	UpdateItem(ctx context.Context, id string, req record.UpdateItemRequest) (*record.Item, error)
	DeleteItem(ctx context.Context, id string) error
	RestoreItem(ctx context.Context, id string) error
	PurgeItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (*record.Item, error)
	ListItems(ctx context.Context) ([]record.Item, error)
	ListTrash(ctx context.Context) ([]record.Item, error)

	CreateFolder(ctx context.Context, req record.FolderRequest) (*record.Folder, error)
	UpdateFolder(ctx context.Context, id string, req record.FolderRequest) (*record.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	ListFolders(ctx context.Context) ([]record.Folder, error)
}

type Handler struct {
	service    Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listItemsOp(), h.listItems)
	huma.Register(api, h.listTrashOp(), h.listTrash)
	huma.Register(api, h.createItemOp(), h.createItem)
	huma.Register(api, h.getItemOp(), h.getItem)
	huma.Register(api, h.updateItemOp(), h.updateItem)
	huma.Register(api, h.deleteItemOp(), h.deleteItem)
	huma.Register(api, h.restoreItemOp(), h.restoreItem)
	huma.Register(api, h.purgeItemOp(), h.purgeItem)

	huma.Register(api, h.listFoldersOp(), h.listFolders)
	huma.Register(api, h.createFolderOp(), h.createFolder)
	huma.Register(api, h.updateFolderOp(), h.updateFolder)
	huma.Register(api, h.deleteFolderOp(), h.deleteFolder)
}

func (h *Handler) listItems(ctx context.Context, _ *struct{}) (*itemsOutput, error) {
	list, err := h.service.ListItems(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return items(list), nil
}

func (h *Handler) listTrash(ctx context.Context, _ *struct{}) (*itemsOutput, error) {
	list, err := h.service.ListTrash(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return items(list), nil
}

func (h *Handler) createItem(ctx context.Context, input *createItemInput) (*itemOutput, error) {
	item, err := h.service.CreateItem(ctx, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &itemOutput{Body: item}, nil
}

func (h *Handler) getItem(ctx context.Context, input *idInput) (*itemOutput, error) {
	item, err := h.service.GetItem(ctx, input.ID)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &itemOutput{Body: item}, nil
}

func (h *Handler) updateItem(ctx context.Context, input *updateItemInput) (*itemOutput, error) {
	item, err := h.service.UpdateItem(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &itemOutput{Body: item}, nil
}

func (h *Handler) deleteItem(ctx context.Context, input *idInput) (*statusOutput, error) {
	if err := h.service.DeleteItem(ctx, input.ID); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return ok(input.ID), nil
}

func (h *Handler) restoreItem(ctx context.Context, input *idInput) (*statusOutput, error) {
	if err := h.service.RestoreItem(ctx, input.ID); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return ok(input.ID), nil
}

func (h *Handler) purgeItem(ctx context.Context, input *idInput) (*statusOutput, error) {
	if err := h.service.PurgeItem(ctx, input.ID); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return ok(input.ID), nil
}

func (h *Handler) listFolders(ctx context.Context, _ *struct{}) (*foldersOutput, error) {
	list, err := h.service.ListFolders(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return folders(list), nil
}

func (h *Handler) createFolder(ctx context.Context, input *folderInput) (*folderOutput, error) {
	folder, err := h.service.CreateFolder(ctx, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &folderOutput{Body: folder}, nil
}

func (h *Handler) updateFolder(ctx context.Context, input *updateFolderInput) (*folderOutput, error) {
	folder, err := h.service.UpdateFolder(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &folderOutput{Body: folder}, nil
}

func (h *Handler) deleteFolder(ctx context.Context, input *idInput) (*statusOutput, error) {
	if err := h.service.DeleteFolder(ctx, input.ID); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return ok(input.ID), nil
}

func ok(id string) *statusOutput {
	return &statusOutput{Body: statusResponse{ID: id, Status: "Ok"}}
}
