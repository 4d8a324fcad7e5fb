package session

import (
	"context"
	"time"
)

type Repository interface {
	// GetSession возвращает nil, nil если пользователь не входил
	GetSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s *Session) error
	UpdateLastSync(ctx context.Context, at time.Time) error
	ClearSession(ctx context.Context) error
}

// Authenticator - обмен учетных данных и refresh-токена на новые токены
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
}
