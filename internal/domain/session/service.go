package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gophvault/internal/apperr"

	"golang.org/x/exp/slog"
)

// RefreshSkew - за сколько до истечения токен обновляется заранее
const RefreshSkew = 300 * time.Second

type Servicer interface {
	Current(ctx context.Context) (*Session, error)
	EnsureValid(ctx context.Context, s *Session) (*Session, error)
	Authenticate(ctx context.Context, email, passwordHash string) (*Session, error)
	UpdateLastSync(ctx context.Context, at time.Time) error
}

type Service struct {
	repo Repository
	auth Authenticator
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, auth Authenticator, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		auth: auth,
		log:  log.With(slog.String("component", "session")),
		now:  time.Now,
	}
}

// Current возвращает сохраненную сессию или nil
func (s *Service) Current(ctx context.Context) (*Session, error) {
	return s.repo.GetSession(ctx)
}

// EnsureValid обновляет токены, если до истечения осталось не больше RefreshSkew
func (s *Service) EnsureValid(ctx context.Context, sess *Session) (*Session, error) {
	if !sess.ExpiresWithin(s.now(), RefreshSkew) {
		return sess, nil
	}

	s.log.Info("токен истекает, обновляем", slog.Time("expires_at", sess.ExpiresAt))

	tokens, err := s.auth.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		// сетевой сбой не означает отказ сервера
		kind := apperr.ErrAuth
		if errors.Is(err, apperr.ErrNetwork) {
			kind = apperr.ErrNetwork
		}
		return nil, apperr.Wrap(kind, "не удалось обновить сессию", err)
	}

	refreshed := s.fromTokens(tokens)
	if refreshed.UserID == "" {
		refreshed.UserID = sess.UserID
	}
	if refreshed.Email == "" {
		refreshed.Email = sess.Email
	}
	refreshed.LastSyncAt = sess.LastSyncAt

	if err := s.repo.SaveSession(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("save refreshed session: %w", err)
	}
	return refreshed, nil
}

// Authenticate обменивает email и хеш пароля на новую сессию и сохраняет ее
func (s *Service) Authenticate(ctx context.Context, email, passwordHash string) (*Session, error) {
	tokens, err := s.auth.SignIn(ctx, email, passwordHash)
	if err != nil {
		return nil, err
	}

	sess := s.fromTokens(tokens)
	if sess.UserID == "" {
		return nil, apperr.Auth("сервер не вернул идентификатор пользователя")
	}
	if sess.Email == "" {
		sess.Email = email
	}

	if err := s.repo.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Info("вход выполнен", slog.String("user_id", sess.UserID))
	return sess, nil
}

func (s *Service) UpdateLastSync(ctx context.Context, at time.Time) error {
	return s.repo.UpdateLastSync(ctx, at)
}

func (s *Service) fromTokens(t *Tokens) *Session {
	claims, err := parseClaims(t.AccessToken)
	if err != nil {
		s.log.Debug("access token is not a readable JWT", slog.String("error", err.Error()))
		claims = nil
	}

	sess := &Session{
		UserID:       t.UserID,
		Email:        t.Email,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    expiry(t, claims, s.now()),
	}
	if claims != nil {
		if sess.UserID == "" {
			sess.UserID = claims.Subject
		}
		if sess.Email == "" {
			sess.Email = claims.Email
		}
	}
	return sess
}
