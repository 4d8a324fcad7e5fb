// Package api - локальный HTTP API агента хранилища.
//
//	GET  /api/v1/health
//	POST /api/v1/auth/login | logout | unlock | lock, GET /api/v1/auth/session
//	GET|POST /api/v1/items, GET /api/v1/items/trash
//	GET|PUT|DELETE /api/v1/items/{id}, POST /api/v1/items/{id}/restore, DELETE /api/v1/items/{id}/purge
//	GET|POST /api/v1/folders, PUT|DELETE /api/v1/folders/{id}
//	POST /api/v1/sync, GET /api/v1/sync/status | ping | unsynced
//	GET|PUT /api/v1/settings
package api

import (
	authAPI "gophvault/internal/app/agent/api/http/auth"
	healthAPI "gophvault/internal/app/agent/api/http/health"
	settingsAPI "gophvault/internal/app/agent/api/http/settings"
	syncAPI "gophvault/internal/app/agent/api/http/sync"
	vaultAPI "gophvault/internal/app/agent/api/http/vault"
	"gophvault/internal/app/agent/api/middleware"
	"gophvault/internal/app/agent/api/middleware/logger"
	"gophvault/internal/app/agent/api/middleware/token"
	"gophvault/internal/app/client"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

const Version = "1.0.0"

type Handlers struct {
	Health   *healthAPI.Handler
	Auth     *authAPI.Handler
	Vault    *vaultAPI.Handler
	Sync     *syncAPI.Handler
	Settings *settingsAPI.Handler
}

// New создает *chi.Mux со всеми операциями агента.
// Пустой agentToken отключает проверку токена.
func New(app *client.App, agentToken string, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	Register(humachi.New(mux, Config()), app, agentToken, log)
	return mux
}

func Config() huma.Config {
	config := huma.DefaultConfig("GophVault Agent API", Version)
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	return config
}

// Register регистрирует операции агента в api
func Register(api huma.API, app *client.App, agentToken string, log *slog.Logger) {
	h := handlers(app, agentToken, log)
	h.Health.SetupRoutes(api)
	h.Auth.SetupRoutes(api)
	h.Vault.SetupRoutes(api)
	h.Sync.SetupRoutes(api)
	h.Settings.SetupRoutes(api)
}

func handlers(app *client.App, agentToken string, log *slog.Logger) *Handlers {
	tokenMW := token.New(agentToken, log)
	loggerMW := logger.New(log)

	public := middleware.Chain(loggerMW.Middleware())
	protected := middleware.Chain(loggerMW.Middleware(), tokenMW.Middleware())

	return &Handlers{
		Health:   healthAPI.NewHandler(app, Version, log, public),
		Auth:     authAPI.NewHandler(app, log, protected),
		Vault:    vaultAPI.NewHandler(app, log, protected),
		Sync:     syncAPI.NewHandler(app, log, protected),
		Settings: settingsAPI.NewHandler(app, log, protected),
	}
}
