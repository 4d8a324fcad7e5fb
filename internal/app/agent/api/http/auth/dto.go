package auth

import (
	"time"

	"gophvault/internal/domain/sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type loginInput struct {
	Body loginRequest
}

// loginRequest принимает либо мастер-пароль, либо готовые производные хеши
type loginRequest struct {
	Email         string `json:"email" format:"email" doc:"Email пользователя"`
	Password      string `json:"password,omitempty" doc:"Мастер-пароль, хеши вычисляет агент"`
	PasswordHash  string `json:"password_hash,omitempty" doc:"Производный пароль для сервера авторизации"`
	MasterKeyHash string `json:"master_key_hash,omitempty" doc:"Хеш мастер-ключа для разблокировки"`
}

func (r loginRequest) Validate() error {
	usesHashes := r.Password == ""
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.PasswordHash, validation.When(usesHashes, validation.Required)),
		validation.Field(&r.MasterKeyHash, validation.When(usesHashes, validation.Required)),
	)
}

type unlockInput struct {
	Body unlockRequest
}

type unlockRequest struct {
	Password      string `json:"password,omitempty" doc:"Мастер-пароль"`
	MasterKeyHash string `json:"master_key_hash,omitempty" doc:"Хеш мастер-ключа"`
}

func (r unlockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MasterKeyHash, validation.When(r.Password == "", validation.Required)),
	)
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	UserID      string       `json:"user_id"`
	Email       string       `json:"email"`
	ExpiresAt   time.Time    `json:"expires_at"`
	InitialSync *sync.Result `json:"initial_sync,omitempty"`
	SyncError   string       `json:"sync_error,omitempty" doc:"Первичная синхронизация не удалась, вход выполнен"`
}

type sessionOutput struct {
	Body sessionResponse
}

type sessionResponse struct {
	LoggedIn   bool       `json:"logged_in"`
	Locked     bool       `json:"locked"`
	UserID     string     `json:"user_id,omitempty"`
	Email      string     `json:"email,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status" example:"Ok"`
}
