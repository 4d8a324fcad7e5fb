// Package token - проверка статического токена агента.
// Агент слушает localhost, токен защищает от других локальных процессов.
package token

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Token struct {
	secret []byte
	log    *slog.Logger
}

// New возвращает nil, если токен не задан: проверка отключена
func New(secret string, log *slog.Logger) *Token {
	if secret == "" {
		return nil
	}
	return &Token{
		secret: []byte(secret),
		log:    log.With(slog.String("component", "token_middleware")),
	}
}

func (t *Token) Middleware() func(huma.Context, func(huma.Context)) {
	if t == nil {
		return nil
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")

		if !ok || subtle.ConstantTimeCompare([]byte(got), t.secret) != 1 {
			t.log.Warn("отклонен запрос без токена",
				slog.String("path", ctx.URL().Path),
				slog.String("remote_addr", ctx.RemoteAddr()),
			)
			ctx.SetHeader("Content-Type", "application/json")
			ctx.SetStatus(http.StatusUnauthorized)
			if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{"error": "Unauthorized"}); err != nil {
				t.log.Error("json encode", slog.String("error", err.Error()))
			}
			return
		}

		next(ctx)
	}
}
