package health

import (
	"context"
	"errors"
	"testing"

	domainsync "gophvault/internal/domain/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockProber struct {
	mock.Mock
}

func (m *MockProber) IsLocked(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockProber) SyncStatus(ctx context.Context) (domainsync.Status, error) {
	args := m.Called(ctx)
	return args.Get(0).(domainsync.Status), args.Error(1)
}

func TestHandler_report(t *testing.T) {
	tests := []struct {
		name        string
		locked      bool
		lockErr     error
		status      domainsync.Status
		statusErr   error
		wantLocked  bool
		wantPending int
	}{
		{name: "unlocked", status: domainsync.Status{PendingChanges: 2, IsOnline: true}, wantPending: 2},
		{name: "locked", locked: true, wantLocked: true},
		{name: "lock check fails closed", lockErr: errors.New("db closed"), wantLocked: true},
		{name: "status error still OK", statusErr: errors.New("db closed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := new(MockProber)
			vault.On("IsLocked", mock.Anything).Return(tt.locked, tt.lockErr)
			vault.On("SyncStatus", mock.Anything).Return(tt.status, tt.statusErr)
			handler := NewHandler(vault, "1.2.3", slog.Default(), nil)

			output, err := handler.report(context.Background(), &struct{}{})

			require.NoError(t, err)
			assert.Equal(t, "OK", output.Body.Status)
			assert.Equal(t, "1.2.3", output.Body.Version)
			assert.Equal(t, tt.wantLocked, output.Body.Locked)
			assert.Equal(t, tt.wantPending, output.Body.PendingChanges)
			vault.AssertExpectations(t)
		})
	}
}
