package sync

import (
	"context"

	"gophvault/internal/app/agent/api/http/httperr"
	"gophvault/internal/domain/record"
	domainsync "gophvault/internal/domain/sync"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	TriggerSync(ctx context.Context) (*domainsync.Result, error)
	SyncStatus(ctx context.Context) (domainsync.Status, error)
	CheckConnectivity(ctx context.Context) bool
	ListUnsynced(ctx context.Context) (*record.Unsynced, error)
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
	huma.Register(api, h.triggerOp(), h.trigger)
	huma.Register(api, h.statusOp(), h.status)
	huma.Register(api, h.pingOp(), h.ping)
	huma.Register(api, h.unsyncedOp(), h.unsynced)
}

type resultOutput struct {
	Body *domainsync.Result
}

type statusOutput struct {
	Body domainsync.Status
}

type pingOutput struct {
	Body struct {
		Online bool `json:"online"`
	}
}

type unsyncedOutput struct {
	Body *record.Unsynced
}

func (h *Handler) trigger(ctx context.Context, _ *struct{}) (*resultOutput, error) {
	res, err := h.service.TriggerSync(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &resultOutput{Body: res}, nil
}

func (h *Handler) status(ctx context.Context, _ *struct{}) (*statusOutput, error) {
	st, err := h.service.SyncStatus(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &statusOutput{Body: st}, nil
}

func (h *Handler) ping(ctx context.Context, _ *struct{}) (*pingOutput, error) {
	out := &pingOutput{}
	out.Body.Online = h.service.CheckConnectivity(ctx)
	return out, nil
}

func (h *Handler) unsynced(ctx context.Context, _ *struct{}) (*unsyncedOutput, error) {
	u, err := h.service.ListUnsynced(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	if u.Items == nil {
		u.Items = []record.Item{}
	}
	if u.Folders == nil {
		u.Folders = []record.Folder{}
	}
	return &unsyncedOutput{Body: u}, nil
}
