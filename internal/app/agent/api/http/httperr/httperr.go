// Package httperr переводит ошибки приложения в HTTP-ответы huma
package httperr

import (
	"errors"
	"net/http"

	"gophvault/internal/apperr"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

var statuses = []struct {
	kind   error
	status int
}{
	{apperr.ErrNotFound, http.StatusNotFound},
	{apperr.ErrVaultLocked, http.StatusLocked},
	{apperr.ErrNetworkUnavailable, http.StatusServiceUnavailable},
	{apperr.ErrNetwork, http.StatusBadGateway},
	{apperr.ErrAuth, http.StatusUnauthorized},
	{apperr.ErrInvalidOperation, http.StatusBadRequest},
	{apperr.ErrSync, http.StatusBadGateway},
}

// From возвращает ошибку huma со статусом по виду ошибки. Неизвестные ошибки - 500 без подробностей.
func From(log *slog.Logger, err error) error {
	if err == nil {
		return nil
	}

	for _, s := range statuses {
		if errors.Is(err, s.kind) {
			return huma.NewError(s.status, apperr.Message(err))
		}
	}

	log.Error("внутренняя ошибка", slog.String("error", err.Error()))
	return huma.Error500InternalServerError("internal error")
}
