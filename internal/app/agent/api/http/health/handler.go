// Package health - проверка живости агента. Доступна без токена и без разблокировки.
package health

import (
	"context"
	"net/http"

	domainsync "gophvault/internal/domain/sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Prober - то, что агент сообщает о себе без раскрытия данных хранилища
type Prober interface {
	IsLocked(ctx context.Context) (bool, error)
	SyncStatus(ctx context.Context) (domainsync.Status, error)
}

type Handler struct {
	vault      Prober
	version    string
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(vault Prober, version string, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		vault:      vault,
		version:    version,
		log:        log.With(slog.String("component", "health")),
		middleware: mws,
	}
}

type Output struct {
	Body Report
}

type Report struct {
	Status         string `json:"status" example:"OK"`
	Version        string `json:"version"`
	Locked         bool   `json:"locked" doc:"Хранилище заблокировано"`
	PendingChanges int    `json:"pending_changes" doc:"Изменений в очереди на отправку"`
	Online         bool   `json:"online" doc:"Результат последней проверки сервера"`
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Состояние агента",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}, h.report)
}

// report отвечает OK, даже если часть состояния прочитать не удалось
func (h *Handler) report(ctx context.Context, _ *struct{}) (*Output, error) {
	out := &Output{Body: Report{Status: "OK", Version: h.version}}

	locked, err := h.vault.IsLocked(ctx)
	if err != nil {
		h.log.Warn("не удалось проверить блокировку", slog.String("error", err.Error()))
		locked = true
	}
	out.Body.Locked = locked

	st, err := h.vault.SyncStatus(ctx)
	if err != nil {
		h.log.Warn("не удалось получить статус синхронизации", slog.String("error", err.Error()))
		return out, nil
	}
	out.Body.PendingChanges = st.PendingChanges
	out.Body.Online = st.IsOnline
	return out, nil
}
