package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listItemsOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "Активные элементы",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listTrashOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-trash",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/trash",
		Summary:     "Элементы в корзине",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Создать элемент",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Получить элемент",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}",
		Summary:     "Заменить содержимое элемента",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Переместить элемент в корзину",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) restoreItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-restore",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{id}/restore",
		Summary:     "Восстановить элемент из корзины",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) purgeItemOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-purge",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}/purge",
		Summary:     "Удалить элемент безвозвратно",
		Description: "Удаление отправляется на сервер при следующей синхронизации.",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listFoldersOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/folders",
		Summary:     "Список папок",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createFolderOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/folders",
		Summary:     "Создать папку",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateFolderOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-update",
		Method:      http.MethodPut,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Переименовать папку",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteFolderOp() huma.Operation {
	return huma.Operation{
		OperationID: "folders-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Удалить папку",
		Description: "Элементы папки остаются без папки.",
		Tags:        []string{"folders"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
