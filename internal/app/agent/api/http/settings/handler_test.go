package settings

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"gophvault/internal/apperr"
	domainsettings "gophvault/internal/domain/settings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Settings(ctx context.Context) (domainsettings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domainsettings.Settings), args.Error(1)
}

func (m *MockService) SaveSettings(ctx context.Context, s domainsettings.Settings) (domainsettings.Settings, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(domainsettings.Settings), args.Error(1)
}

func TestHandler_get(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	svc.On("Settings", mock.Anything).Return(domainsettings.Default(), nil)

	resp, err := h.get(context.Background(), &struct{}{})

	require.NoError(t, err)
	assert.Equal(t, domainsettings.Default(), resp.Body)
}

func TestHandler_put(t *testing.T) {
	dark := domainsettings.Default()
	dark.Theme = domainsettings.ThemeDark

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)
		svc.On("SaveSettings", mock.Anything, dark).Return(dark, nil)

		resp, err := h.put(context.Background(), &Input{Body: dark})

		require.NoError(t, err)
		assert.Equal(t, domainsettings.ThemeDark, resp.Body.Theme)
	})

	t.Run("invalid", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)
		bad := dark
		bad.AutoLockMinutes = -5
		svc.On("SaveSettings", mock.Anything, bad).
			Return(bad, apperr.InvalidOperation("auto_lock_minutes: must be no less than 0"))

		_, err := h.put(context.Background(), &Input{Body: bad})

		var se huma.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.GetStatus())
	})
}
