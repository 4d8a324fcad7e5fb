package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) triggerOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-trigger",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync",
		Summary:     "Запустить синхронизацию",
		Description: "Отправляет очередь локальных изменений и забирает изменения с сервера. Если цикл уже идет, возвращает in_flight.",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/status",
		Summary:     "Состояние синхронизации",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pingOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-ping",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/ping",
		Summary:     "Проверить доступность сервера",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) unsyncedOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-unsynced",
		Method:      http.MethodGet,
		Path:        "/api/v1/sync/unsynced",
		Summary:     "Несинхронизированные записи",
		Tags:        []string{"sync"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
