package client

import (
	"context"
	"errors"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/session"
	"gophvault/internal/domain/sync"

	"golang.org/x/exp/slog"
)

// LoginResult - итог входа. Ошибка первичной синхронизации вход не отменяет.
type LoginResult struct {
	Session     *session.Session
	InitialSync *sync.Result
	SyncError   error
}

// Login: авторизация на сервере, кэширование ключа, разблокировка, первичная синхронизация.
// passwordHash и masterKeyHash вычисляются вызывающей стороной из мастер-пароля.
func (a *App) Login(ctx context.Context, email, passwordHash, masterKeyHash string) (*LoginResult, error) {
	var (
		sess     *session.Session
		switched bool
	)
	// смена сессии и очистка данных не пересекаются с циклом синхронизации
	err := a.engine.Exclusive(func() error {
		previous, err := a.sessions.Current(ctx)
		if err != nil {
			return err
		}

		sess, err = a.sessions.Authenticate(ctx, email, passwordHash)
		if err != nil {
			return err
		}

		// данные другого пользователя на устройстве не остаются
		if previous != nil && previous.UserID != sess.UserID {
			if err := a.store.ReplaceUser(ctx, sess); err != nil {
				return err
			}
			switched = true
			a.log.Info("вход под другим пользователем, локальные данные очищены",
				slog.String("previous_user_id", previous.UserID))
			if err := a.creds.Forget(previous.Email); err != nil {
				a.log.Warn("не удалось очистить кэш ключей", slog.String("error", err.Error()))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if switched {
		a.engine.Reset()
	}

	if err := a.creds.Remember(sess.Email, masterKeyHash); err != nil {
		a.log.Warn("не удалось сохранить ключ в кэш", slog.String("error", err.Error()))
	}
	if err := a.creds.Unlock(sess.Email, a.autoLockTTL(ctx)); err != nil {
		a.log.Warn("не удалось записать билет разблокировки", slog.String("error", err.Error()))
	}

	res := &LoginResult{Session: sess}
	res.InitialSync, res.SyncError = a.engine.InitialSync(ctx)
	if res.SyncError != nil {
		a.log.Warn("первичная синхронизация не выполнена", slog.String("error", res.SyncError.Error()))
	}

	a.log.Info("пользователь вошел", slog.String("user_id", sess.UserID))
	return res, nil
}

// Logout блокирует хранилище, забывает ключ и удаляет все локальные данные.
// Во время цикла синхронизации выход отклоняется.
func (a *App) Logout(ctx context.Context) error {
	err := a.engine.Exclusive(func() error {
		sess, err := a.sessions.Current(ctx)
		if err != nil {
			return err
		}

		if sess != nil {
			if err := a.creds.Forget(sess.Email); err != nil {
				a.log.Warn("не удалось очистить кэш ключей", slog.String("error", err.Error()))
			}
		} else if err := a.creds.Lock(); err != nil {
			a.log.Warn("не удалось заблокировать хранилище", slog.String("error", err.Error()))
		}

		return a.store.WipeAll(ctx)
	})
	if err != nil {
		return err
	}
	a.engine.Reset()

	a.log.Info("пользователь вышел")
	return nil
}

// Unlock разблокирует хранилище по кэшированному хешу мастер-ключа.
// Если для пользователя в кэше ничего нет, хеш принимается и сохраняется.
func (a *App) Unlock(ctx context.Context, masterKeyHash string) (*session.Session, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperr.Auth("no session found")
	}

	found, err := a.creds.Verify(sess.Email, masterKeyHash)
	if err != nil {
		if errors.Is(err, apperr.ErrAuth) {
			a.log.Warn("неверный мастер-пароль", slog.String("user_id", sess.UserID))
		}
		return nil, err
	}
	if !found {
		if err := a.creds.Remember(sess.Email, masterKeyHash); err != nil {
			return nil, err
		}
	}

	if err := a.creds.Unlock(sess.Email, a.autoLockTTL(ctx)); err != nil {
		return nil, err
	}

	a.log.Info("хранилище разблокировано", slog.String("user_id", sess.UserID))
	return sess, nil
}

func (a *App) Lock() error {
	if err := a.creds.Lock(); err != nil {
		return err
	}
	a.log.Info("хранилище заблокировано")
	return nil
}

// Session возвращает сохраненную сессию или nil
func (a *App) Session(ctx context.Context) (*session.Session, error) {
	return a.sessions.Current(ctx)
}

func (a *App) HasStoredSession(ctx context.Context) (bool, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}
