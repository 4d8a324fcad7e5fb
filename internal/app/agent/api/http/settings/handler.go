package settings

import (
	"context"
	"net/http"

	"gophvault/internal/app/agent/api/http/httperr"
	domainsettings "gophvault/internal/domain/settings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Settings(ctx context.Context) (domainsettings.Settings, error)
	SaveSettings(ctx context.Context, s domainsettings.Settings) (domainsettings.Settings, error)
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

type Output struct {
	Body domainsettings.Settings
}

type Input struct {
	Body domainsettings.Settings
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "settings-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Настройки приложения",
		Tags:        []string{"settings"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "settings-put",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings",
		Summary:     "Сохранить настройки",
		Tags:        []string{"settings"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}, h.put)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*Output, error) {
	s, err := h.service.Settings(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &Output{Body: s}, nil
}

func (h *Handler) put(ctx context.Context, input *Input) (*Output, error) {
	s, err := h.service.SaveSettings(ctx, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &Output{Body: s}, nil
}
