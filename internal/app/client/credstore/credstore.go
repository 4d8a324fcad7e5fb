// Package credstore - файловый кэш ключей на устройстве.
//
// Для каждого email хранится bcrypt от SHA-256 хеша мастер-ключа, а также
// "билет" разблокировки, который делят между собой отдельные запуски CLI.
package credstore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gophvault/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey - мастер-пароль не совпал с кэшированным
var ErrInvalidKey = apperr.Auth("invalid master password")

type Ticket struct {
	Email string `json:"email"`
	// ExpiresAt нулевой, если автоблокировка выключена
	ExpiresAt time.Time `json:"expires_at"`
}

func (t *Ticket) validAt(now time.Time) bool {
	return t.ExpiresAt.IsZero() || now.Before(t.ExpiresAt)
}

type state struct {
	Keys   map[string]string `json:"keys"`
	Ticket *Ticket           `json:"ticket,omitempty"`
}

type Store struct {
	path string
	cost int
	mu   sync.Mutex
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{
		path: path,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
}

// Remember кэширует хеш мастер-ключа для email
func (s *Store) Remember(email, masterKeyHash string) error {
	hash, err := bcrypt.GenerateFromPassword(digest(masterKeyHash), s.cost)
	if err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "hash master key", err)
	}

	return s.update(func(st *state) {
		st.Keys[email] = string(hash)
	})
}

// Verify сверяет хеш с кэшем. found == false, если для email ничего не сохранено.
func (s *Store) Verify(email, masterKeyHash string) (found bool, err error) {
	st, err := s.load()
	if err != nil {
		return false, err
	}

	cached, ok := st.Keys[email]
	if !ok {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(cached), digest(masterKeyHash))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return true, ErrInvalidKey
	default:
		return true, apperr.Wrap(apperr.ErrCredentialStore, "compare master key", err)
	}
}

// Forget удаляет ключ email и билет разблокировки
func (s *Store) Forget(email string) error {
	return s.update(func(st *state) {
		delete(st.Keys, email)
		st.Ticket = nil
	})
}

// Unlock выдает билет на ttl. ttl <= 0 - без ограничения по времени.
func (s *Store) Unlock(email string, ttl time.Duration) error {
	t := &Ticket{Email: email}
	if ttl > 0 {
		t.ExpiresAt = s.now().Add(ttl).UTC()
	}
	return s.update(func(st *state) {
		st.Ticket = t
	})
}

func (s *Store) Lock() error {
	return s.update(func(st *state) {
		st.Ticket = nil
	})
}

// Unlocked сообщает, действует ли билет для email
func (s *Store) Unlocked(email string) (bool, error) {
	st, err := s.load()
	if err != nil {
		return false, err
	}
	t := st.Ticket
	return t != nil && t.Email == email && t.validAt(s.now()), nil
}

func digest(masterKeyHash string) []byte {
	sum := sha256.Sum256([]byte(masterKeyHash))
	return []byte(hex.EncodeToString(sum[:]))
}

func (s *Store) update(fn func(st *state)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read()
	if err != nil {
		return err
	}
	fn(st)
	return s.write(st)
}

func (s *Store) load() (*state, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() (*state, error) {
	st := &state{Keys: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCredentialStore, "read credentials", err)
	}

	if err := json.Unmarshal(data, st); err != nil {
		return nil, apperr.Wrap(apperr.ErrCredentialStore, "decode credentials", err)
	}
	if st.Keys == nil {
		st.Keys = map[string]string{}
	}
	return st, nil
}

// write заменяет файл целиком через временный файл в том же каталоге
func (s *Store) write(st *state) error {
	data, err := json.Marshal(st)
	if err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "encode credentials", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "create dir", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return apperr.Wrap(apperr.ErrCredentialStore, "chmod", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return apperr.Wrap(apperr.ErrCredentialStore, "write credentials", err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "close credentials", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperr.Wrap(apperr.ErrCredentialStore, "replace credentials", err)
	}
	return nil
}
