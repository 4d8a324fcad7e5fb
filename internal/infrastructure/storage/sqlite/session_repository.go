package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gophvault/internal/domain/session"

	"golang.org/x/exp/slog"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With(slog.String("component", "session_repository")),
	}
}

// GetSession возвращает nil без ошибки, если пользователь не входил
func (r *SessionRepository) GetSession(ctx context.Context) (*session.Session, error) {
	var s *session.Session
	err := r.db.withTx(ctx, "get session", func(tx *sql.Tx) error {
		var (
			out       session.Session
			expiresAt string
			lastSync  sql.NullString
		)
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, email, access_token, refresh_token, expires_at, last_sync_at
             FROM user_session WHERE id = 1`,
		).Scan(&out.UserID, &out.Email, &out.AccessToken, &out.RefreshToken, &expiresAt, &lastSync)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if out.ExpiresAt, err = parseTime(expiresAt); err != nil {
			return err
		}
		if out.LastSyncAt, err = parseNullTime(lastSync); err != nil {
			return err
		}
		s = &out
		return nil
	})
	return s, err
}

func (r *SessionRepository) SaveSession(ctx context.Context, s *session.Session) error {
	return r.db.withTx(ctx, "save session", func(tx *sql.Tx) error {
		return saveSession(ctx, tx, s)
	})
}

func saveSession(ctx context.Context, tx *sql.Tx, s *session.Session) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO user_session (id, user_id, email, access_token, refresh_token, expires_at, last_sync_at)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    user_id       = excluded.user_id,
    email         = excluded.email,
    access_token  = excluded.access_token,
    refresh_token = excluded.refresh_token,
    expires_at    = excluded.expires_at,
    last_sync_at  = excluded.last_sync_at`,
		s.UserID, s.Email, s.AccessToken, s.RefreshToken,
		formatTime(s.ExpiresAt), formatNullTime(s.LastSyncAt))
	return err
}

// UpdateLastSync не создает сессию, если ее нет
func (r *SessionRepository) UpdateLastSync(ctx context.Context, at time.Time) error {
	return r.db.withTx(ctx, "update last sync", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE user_session SET last_sync_at = ? WHERE id = 1`, formatTime(at))
		return err
	})
}

func (r *SessionRepository) ClearSession(ctx context.Context) error {
	return r.db.withTx(ctx, "clear session", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM user_session`)
		return err
	})
}
