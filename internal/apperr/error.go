// Package apperr описывает таксономию ошибок клиента хранилища.
//
// Каждая ошибка относится к одному виду (Kind) и может нести исходную причину.
// errors.Is срабатывает как на вид, так и на причину.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStorage            = errors.New("storage error")
	ErrSerialization      = errors.New("serialization error")
	ErrNetwork            = errors.New("network error")
	ErrCredentialStore    = errors.New("credential store error")
	ErrAuth               = errors.New("authentication failed")
	ErrSync               = errors.New("sync failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrVaultLocked        = errors.New("vault is locked")
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// Error - ошибка предметной области с видом, сообщением и причиной
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New создает ошибку вида kind с сообщением
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap оборачивает err в ошибку вида kind. nil остается nil.
func Wrap(kind error, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func Auth(message string) *Error {
	return New(ErrAuth, message)
}

func Sync(message string) *Error {
	return New(ErrSync, message)
}

func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

func InvalidOperation(message string) *Error {
	return New(ErrInvalidOperation, message)
}

// Message собирает сообщения всех ошибок цепочки от внешней к внутренней через ": ".
// Если сообщений нет, возвращает err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var parts []string
	for cur := err; cur != nil; {
		var e *Error
		if !errors.As(cur, &e) {
			break
		}
		if e.Message != "" {
			parts = append(parts, e.Message)
		}
		cur = e.Err
	}

	if len(parts) == 0 {
		return err.Error()
	}
	return strings.Join(parts, ": ")
}
