package auth

import (
	"context"

	"gophvault/internal/app/agent/api/http/httperr"
	"gophvault/internal/app/client"
	"gophvault/internal/app/client/crypto"
	"gophvault/internal/domain/session"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Login(ctx context.Context, email, passwordHash, masterKeyHash string) (*client.LoginResult, error)
	Logout(ctx context.Context) error
	Unlock(ctx context.Context, masterKeyHash string) (*session.Session, error)
	Lock() error
	IsLocked(ctx context.Context) (bool, error)
	Session(ctx context.Context) (*session.Session, error)
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
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.unlockOp(), h.unlock)
	huma.Register(api, h.lockOp(), h.lock)
	huma.Register(api, h.sessionOp(), h.session)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	req := input.Body
	if err := req.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	passwordHash, masterKeyHash := req.PasswordHash, req.MasterKeyHash
	if req.Password != "" {
		passwordHash = crypto.DeriveAuthHash(req.Email, req.Password)
		masterKeyHash = crypto.DeriveMasterKeyHash(req.Email, req.Password)
	}

	res, err := h.service.Login(ctx, req.Email, passwordHash, masterKeyHash)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	out := &loginOutput{Body: loginResponse{
		UserID:      res.Session.UserID,
		Email:       res.Session.Email,
		ExpiresAt:   res.Session.ExpiresAt,
		InitialSync: res.InitialSync,
	}}
	if res.SyncError != nil {
		out.Body.SyncError = res.SyncError.Error()
	}
	return out, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*statusOutput, error) {
	if err := h.service.Logout(ctx); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) unlock(ctx context.Context, input *unlockInput) (*sessionOutput, error) {
	req := input.Body
	if err := req.Validate(); err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	masterKeyHash := req.MasterKeyHash
	if req.Password != "" {
		sess, err := h.service.Session(ctx)
		if err != nil {
			return nil, httperr.From(h.log, err)
		}
		if sess == nil {
			return nil, huma.Error401Unauthorized("no session found")
		}
		masterKeyHash = crypto.DeriveMasterKeyHash(sess.Email, req.Password)
	}

	sess, err := h.service.Unlock(ctx, masterKeyHash)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &sessionOutput{Body: toSessionResponse(sess, false)}, nil
}

func (h *Handler) lock(_ context.Context, _ *struct{}) (*statusOutput, error) {
	if err := h.service.Lock(); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &statusOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) session(ctx context.Context, _ *struct{}) (*sessionOutput, error) {
	sess, err := h.service.Session(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	locked, err := h.service.IsLocked(ctx)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &sessionOutput{Body: toSessionResponse(sess, locked)}, nil
}

func toSessionResponse(sess *session.Session, locked bool) sessionResponse {
	if sess == nil {
		return sessionResponse{Locked: true}
	}
	expiresAt := sess.ExpiresAt
	return sessionResponse{
		LoggedIn:   true,
		Locked:     locked,
		UserID:     sess.UserID,
		Email:      sess.Email,
		ExpiresAt:  &expiresAt,
		LastSyncAt: sess.LastSyncAt,
	}
}
