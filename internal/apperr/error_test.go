package apperr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := Wrap(ErrStorage, "insert item", io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrAuth))
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "kind only", err: &Error{Kind: ErrVaultLocked}, want: "vault is locked"},
		{name: "with message", err: Auth("Invalid login credentials"), want: "authentication failed: Invalid login credentials"},
		{name: "with cause", err: Wrap(ErrNetwork, "", io.EOF), want: "network error: EOF"},
		{name: "message and cause", err: Wrap(ErrStorage, "select", io.EOF), want: "storage error: select: EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(ErrStorage, "noop", nil))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "No session found", Message(Auth("No session found")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}

func TestMessage_Chain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "inner server message kept",
			err:  Wrap(ErrAuth, "refresh", Auth("Invalid Refresh Token: Already Used")),
			want: "refresh: Invalid Refresh Token: Already Used",
		},
		{
			name: "through fmt wrapping",
			err:  fmt.Errorf("save: %w", Wrap(ErrSync, "push", Wrap(ErrNetwork, "POST /items", io.EOF))),
			want: "push: POST /items",
		},
		{
			name: "empty outer message",
			err:  Wrap(ErrNetwork, "", Auth("expired")),
			want: "expired",
		},
		{
			name: "no messages",
			err:  Wrap(ErrStorage, "", io.EOF),
			want: "storage error: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
