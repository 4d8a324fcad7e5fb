package sync

import (
	"context"
	"errors"
	"sort"
	gosync "sync"
	"testing"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"
	"gophvault/internal/domain/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// memStore - хранилище в памяти с семантикой очереди как у SQLite-реализации
type memStore struct {
	mu      gosync.Mutex
	items   map[string]record.Item
	folders map[string]record.Folder
	queue   []outbox.Entry
	seq     int64
}

func newMemStore() *memStore {
	return &memStore{
		items:   map[string]record.Item{},
		folders: map[string]record.Folder{},
	}
}

func (s *memStore) putItem(item record.Item, op outbox.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	s.enqueueLocked(op, record.KindItem, item.ID)
}

func (s *memStore) enqueue(op outbox.Operation, kind record.EntityKind, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueueLocked(op, kind, id)
}

func (s *memStore) enqueueLocked(op outbox.Operation, kind record.EntityKind, id string) {
	s.seq++
	s.queue = append(s.queue, outbox.Entry{SequenceID: s.seq, Operation: op, Kind: kind, RecordID: id, CreatedAt: time.Now()})
}

func (s *memStore) ListPending(context.Context) ([]outbox.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outbox.Entry(nil), s.queue...), nil
}

func (s *memStore) Dequeue(_ context.Context, seq int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.queue {
		if e.SequenceID == seq {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	return nil
}

func (s *memStore) ClearOutbox(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
	return nil
}

func (s *memStore) CountPending(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue), nil
}

func (s *memStore) GetItem(_ context.Context, id string) (*record.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("item " + id)
	}
	return &item, nil
}

func (s *memStore) GetFolder(_ context.Context, id string) (*record.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder, ok := s.folders[id]
	if !ok {
		return nil, apperr.NotFound("folder " + id)
	}
	return &folder, nil
}

func (s *memStore) MarkSynced(_ context.Context, kind record.EntityKind, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case record.KindItem:
		if item, ok := s.items[id]; ok {
			item.SyncedAt = &at
			item.ServerUpdatedAt = &at
			s.items[id] = item
		}
	case record.KindFolder:
		if folder, ok := s.folders[id]; ok {
			folder.SyncedAt = &at
			s.folders[id] = folder
		}
	}
	return nil
}

func (s *memStore) BulkUpsertItems(_ context.Context, items []record.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.items[item.ID] = item
	}
	return nil
}

func (s *memStore) BulkUpsertFolders(_ context.Context, folders []record.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, folder := range folders {
		s.folders[folder.ID] = folder
	}
	return nil
}

type fakeSessions struct {
	mu   gosync.Mutex
	sess *session.Session
}

func (f *fakeSessions) Current(context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return nil, nil
	}
	cp := *f.sess
	return &cp, nil
}

func (f *fakeSessions) EnsureValid(_ context.Context, s *session.Session) (*session.Session, error) {
	return s, nil
}

func (f *fakeSessions) UpdateLastSync(_ context.Context, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess.LastSyncAt = &at
	return nil
}

func (f *fakeSessions) lastSync() *time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess.LastSyncAt
}

// MockRemote is a mock implementation of the Remote interface for testing
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) UpsertItem(ctx context.Context, token string, item record.ItemDTO) error {
	return m.Called(ctx, token, item).Error(0)
}

func (m *MockRemote) UpsertFolder(ctx context.Context, token string, folder record.FolderDTO) error {
	return m.Called(ctx, token, folder).Error(0)
}

func (m *MockRemote) Delete(ctx context.Context, token string, kind record.EntityKind, id string) error {
	return m.Called(ctx, token, kind, id).Error(0)
}

func (m *MockRemote) ListFolders(ctx context.Context, token, userID string, since *time.Time) ([]record.FolderDTO, error) {
	args := m.Called(ctx, token, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.FolderDTO), args.Error(1)
}

func (m *MockRemote) ListItems(ctx context.Context, token, userID string, since *time.Time) ([]record.ItemDTO, error) {
	args := m.Called(ctx, token, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.ItemDTO), args.Error(1)
}

func (m *MockRemote) Ping(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func testSession() *session.Session {
	return &session.Session{
		UserID:       "user-1",
		Email:        "a@example.com",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func newTestEngine(store Store, sessions Sessions, remote Remote) *Engine {
	return NewEngine(store, sessions, remote, slog.Default(), Config{Timeout: 5 * time.Second, Interval: time.Hour})
}

func localItem(id, data string) record.Item {
	now := time.Now().UTC()
	return record.Item{ID: id, EncryptedData: data, Type: record.TypeLogin, CreatedAt: now, LocalUpdatedAt: now}
}

func expectEmptyPull(remote *MockRemote) {
	remote.On("ListFolders", mock.Anything, "access", "user-1", mock.Anything).Return([]record.FolderDTO{}, nil)
	remote.On("ListItems", mock.Anything, "access", "user-1", mock.Anything).Return([]record.ItemDTO{}, nil)
}

func TestEngine_Sync_PushesOutboxAndStampsLastSync(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "data-a"), outbox.OpCreate)
	store.putItem(localItem("b", "data-b"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	remote.On("UpsertItem", mock.Anything, "access", mock.MatchedBy(func(d record.ItemDTO) bool {
		return d.UserID == "user-1"
	})).Return(nil).Twice()
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)
	before := time.Now().UTC()

	res, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.False(t, res.InFlight)
	assert.Equal(t, 2, res.Pushed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 0, res.Status.PendingChanges)
	assert.False(t, res.Status.IsSyncing)
	require.NotNil(t, res.Status.LastSyncAt)
	assert.False(t, res.Status.LastSyncAt.Before(before))

	for _, id := range []string{"a", "b"} {
		item, err := store.GetItem(context.Background(), id)
		require.NoError(t, err)
		assert.NotNil(t, item.SyncedAt, id)
	}
	require.NotNil(t, sessions.lastSync())
	remote.AssertExpectations(t)
}

func TestEngine_Sync_FailedPushStaysQueued(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "data-a"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	netErr := apperr.Wrap(apperr.ErrNetwork, "", errors.New("connection refused"))
	remote.On("UpsertItem", mock.Anything, "access", mock.Anything).Return(netErr)
	remote.On("ListFolders", mock.Anything, "access", "user-1", mock.Anything).Return(nil, netErr)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	assert.ErrorIs(t, err, apperr.ErrNetwork)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "a", res.Errors[0].RecordID)
	assert.Equal(t, 1, res.Status.PendingChanges)
	assert.False(t, res.Status.IsSyncing)
	assert.False(t, res.Status.IsOnline)
	assert.Nil(t, res.Status.LastSyncAt)
	assert.Nil(t, sessions.lastSync())

	item, _ := store.GetItem(context.Background(), "a")
	assert.Nil(t, item.SyncedAt)
}

func TestEngine_Sync_OneFailingItemDoesNotAbortBatch(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("bad", "x"), outbox.OpCreate)
	store.putItem(localItem("good", "y"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	remote.On("UpsertItem", mock.Anything, "access", mock.MatchedBy(func(d record.ItemDTO) bool { return d.ID == "bad" })).
		Return(apperr.Sync("upsert vault_items: 400 Bad Request"))
	remote.On("UpsertItem", mock.Anything, "access", mock.MatchedBy(func(d record.ItemDTO) bool { return d.ID == "good" })).
		Return(nil)
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Pushed)
	require.Len(t, res.Errors, 1)
	pending, _ := store.ListPending(context.Background())
	require.Len(t, pending, 1)
	assert.Equal(t, "bad", pending[0].RecordID)
	assert.NotNil(t, res.Status.LastSyncAt)
}

func TestEngine_Sync_PushesInSequenceOrder(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "1"), outbox.OpCreate)
	store.enqueue(outbox.OpDelete, record.KindItem, "gone")
	store.folders["f"] = record.Folder{ID: "f", Name: "Work"}
	store.enqueue(outbox.OpUpdate, record.KindFolder, "f")
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	var order []string
	remote.On("UpsertItem", mock.Anything, "access", mock.Anything).
		Run(func(args mock.Arguments) { order = append(order, "upsert:"+args.Get(2).(record.ItemDTO).ID) }).Return(nil)
	remote.On("Delete", mock.Anything, "access", record.KindItem, "gone").
		Run(func(args mock.Arguments) { order = append(order, "delete:gone") }).Return(nil)
	remote.On("UpsertFolder", mock.Anything, "access", mock.Anything).
		Run(func(args mock.Arguments) { order = append(order, "folder:"+args.Get(2).(record.FolderDTO).ID) }).Return(nil)
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	_, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"upsert:a", "delete:gone", "folder:f"}, order)
}

func TestEngine_Sync_PushesCurrentRowState(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "v1"), outbox.OpCreate)
	store.putItem(localItem("a", "v2"), outbox.OpUpdate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	remote.On("UpsertItem", mock.Anything, "access", mock.MatchedBy(func(d record.ItemDTO) bool {
		return d.EncryptedData == "v2"
	})).Return(nil).Twice()
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Pushed)
	remote.AssertExpectations(t)
}

func TestEngine_Sync_SkipsRecordRemovedBeforePush(t *testing.T) {
	store := newMemStore()
	store.enqueue(outbox.OpCreate, record.KindItem, "purged")
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, res.Status.PendingChanges)
	remote.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything, mock.Anything)
}

// brokenStore отдает ошибку хранилища при чтении элемента
type brokenStore struct {
	*memStore
}

func (b brokenStore) GetItem(context.Context, string) (*record.Item, error) {
	return nil, apperr.Wrap(apperr.ErrStorage, "get item", errors.New("disk I/O error"))
}

func TestEngine_Sync_StorageFaultAbortsPush(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "1"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	engine := newTestEngine(brokenStore{store}, sessions, remote)

	res, err := engine.Sync(context.Background())

	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Status.PendingChanges)
	assert.Nil(t, sessions.lastSync())
	remote.AssertNotCalled(t, "ListFolders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_Sync_RequiresSession(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "1"), outbox.OpCreate)
	remote := new(MockRemote)

	engine := newTestEngine(store, &fakeSessions{}, remote)

	res, err := engine.Sync(context.Background())

	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, 1, res.Status.PendingChanges)
	remote.AssertExpectations(t)
}

func TestEngine_Sync_PullUsesLastSyncAndMapsRows(t *testing.T) {
	store := newMemStore()
	sess := testSession()
	lastSync := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	sess.LastSyncAt = &lastSync
	sessions := &fakeSessions{sess: sess}
	remote := new(MockRemote)

	serverTime := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	sinceLastSync := mock.MatchedBy(func(s *time.Time) bool { return s != nil && s.Equal(lastSync) })
	remote.On("ListFolders", mock.Anything, "access", "user-1", sinceLastSync).
		Return([]record.FolderDTO{{ID: "f", Name: "Work", UpdatedAt: &serverTime}}, nil)
	remote.On("ListItems", mock.Anything, "access", "user-1", sinceLastSync).
		Return([]record.ItemDTO{{ID: "i", EncryptedData: "enc", Type: "note", UpdatedAt: &serverTime}}, nil)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.PulledFolders)
	assert.Equal(t, 1, res.PulledItems)

	item, err := store.GetItem(context.Background(), "i")
	require.NoError(t, err)
	assert.True(t, item.LocalUpdatedAt.Equal(serverTime))
	require.NotNil(t, item.ServerUpdatedAt)
	assert.True(t, item.ServerUpdatedAt.Equal(serverTime))
	require.NotNil(t, item.SyncedAt)
	assert.True(t, item.SyncedAt.After(serverTime))
	remote.AssertExpectations(t)
}

func TestEngine_Sync_PullFailureKeepsPushProgress(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "1"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	remote.On("UpsertItem", mock.Anything, "access", mock.Anything).Return(nil)
	remote.On("ListFolders", mock.Anything, "access", "user-1", mock.Anything).
		Return(nil, apperr.Sync("fetch folders: 500 Internal Server Error"))

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.Sync(context.Background())

	assert.ErrorIs(t, err, apperr.ErrSync)
	assert.Equal(t, 1, res.Pushed)
	assert.Equal(t, 0, res.Status.PendingChanges)
	assert.Nil(t, sessions.lastSync())
}

func TestEngine_Sync_SingleFlight(t *testing.T) {
	store := newMemStore()
	for _, id := range []string{"a", "b", "c"} {
		store.putItem(localItem(id, "data-"+id), outbox.OpCreate)
	}
	lastSync := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sess := testSession()
	sess.LastSyncAt = &lastSync
	sessions := &fakeSessions{sess: sess}
	remote := new(MockRemote)

	started := make(chan struct{})
	release := make(chan struct{})
	var once gosync.Once
	remote.On("UpsertItem", mock.Anything, "access", mock.Anything).
		Run(func(mock.Arguments) {
			once.Do(func() {
				close(started)
				<-release
			})
		}).
		Return(nil)
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	firstDone := make(chan error, 1)
	go func() {
		_, err := engine.Sync(context.Background())
		firstDone <- err
	}()
	<-started

	var wg gosync.WaitGroup
	results := make([]*Result, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Sync(context.Background())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.True(t, res.InFlight)
		assert.True(t, res.Status.IsSyncing)
		// статус догонки совпадает с тем, что вернул бы Status()
		assert.Equal(t, 3, res.Status.PendingChanges)
		require.NotNil(t, res.Status.LastSyncAt)
		assert.True(t, lastSync.Equal(*res.Status.LastSyncAt))
	}

	close(release)
	require.NoError(t, <-firstDone)

	remote.AssertNumberOfCalls(t, "UpsertItem", 3)
	remote.AssertNumberOfCalls(t, "ListFolders", 1)
	remote.AssertNumberOfCalls(t, "ListItems", 1)

	status, err := engine.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsSyncing)
	assert.Equal(t, 0, status.PendingChanges)
}

func TestEngine_Sync_Timeout(t *testing.T) {
	store := newMemStore()
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	remote.On("ListFolders", mock.Anything, "access", "user-1", mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, apperr.Wrap(apperr.ErrNetwork, "", context.DeadlineExceeded))

	engine := NewEngine(store, sessions, remote, slog.Default(), Config{Timeout: 50 * time.Millisecond, Interval: time.Hour})

	start := time.Now()
	res, err := engine.Sync(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, res.Status.IsSyncing)
	assert.Nil(t, sessions.lastSync())
}

func TestEngine_Sync_CancelledBeforePush(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "1"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	engine := newTestEngine(store, sessions, remote)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Sync(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	remote.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything, mock.Anything)
	pending, _ := store.ListPending(context.Background())
	assert.Len(t, pending, 1)
}

func TestEngine_InitialSync(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("local", "stale"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	updated := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	folderID := "f1"
	noFilter := mock.MatchedBy(func(s *time.Time) bool { return s == nil })
	remote.On("ListFolders", mock.Anything, "access", "user-1", noFilter).
		Return([]record.FolderDTO{{ID: folderID, Name: "Work", UpdatedAt: &updated}}, nil)
	remote.On("ListItems", mock.Anything, "access", "user-1", noFilter).
		Return([]record.ItemDTO{
			{ID: "i1", EncryptedData: "e1", Type: "login", FolderID: &folderID, UpdatedAt: &updated},
			{ID: "i2", EncryptedData: "e2", Type: "note", UpdatedAt: &updated},
		}, nil)

	engine := newTestEngine(store, sessions, remote)

	res, err := engine.InitialSync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.PulledFolders)
	assert.Equal(t, 2, res.PulledItems)
	assert.Equal(t, 0, res.Status.PendingChanges)
	assert.NotNil(t, sessions.lastSync())

	ids := make([]string, 0, len(store.items))
	for id := range store.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"i1", "i2", "local"}, ids)
	remote.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_CheckConnectivity(t *testing.T) {
	store := newMemStore()
	sessions := &fakeSessions{sess: testSession()}

	tests := []struct {
		name   string
		online bool
		err    error
	}{
		{name: "online", online: true},
		{name: "offline", online: false, err: apperr.Wrap(apperr.ErrNetwork, "", errors.New("no route to host"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := new(MockRemote)
			remote.On("Ping", mock.Anything).Return(tt.online, tt.err)
			engine := newTestEngine(store, sessions, remote)

			assert.Equal(t, tt.online, engine.CheckConnectivity(context.Background()))

			status, err := engine.Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.online, status.IsOnline)
		})
	}
}

func TestEngine_Reset(t *testing.T) {
	store := newMemStore()
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)
	_, err := engine.Sync(context.Background())
	require.NoError(t, err)

	engine.Reset()
	sessions.sess = nil

	status, err := engine.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.LastSyncAt)
	assert.False(t, status.IsOnline)
}

func TestEngine_Exclusive(t *testing.T) {
	store := newMemStore()
	store.putItem(localItem("a", "data-a"), outbox.OpCreate)
	sessions := &fakeSessions{sess: testSession()}
	remote := new(MockRemote)

	started := make(chan struct{})
	release := make(chan struct{})
	remote.On("UpsertItem", mock.Anything, "access", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	expectEmptyPull(remote)

	engine := newTestEngine(store, sessions, remote)

	t.Run("refused while syncing", func(t *testing.T) {
		done := make(chan error, 1)
		go func() {
			_, err := engine.Sync(context.Background())
			done <- err
		}()
		<-started

		called := false
		err := engine.Exclusive(func() error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
		assert.False(t, called)

		close(release)
		require.NoError(t, <-done)
	})

	t.Run("sync does not start inside", func(t *testing.T) {
		var inner *Result
		err := engine.Exclusive(func() error {
			var err error
			inner, err = engine.Sync(context.Background())
			return err
		})
		require.NoError(t, err)
		require.NotNil(t, inner)
		assert.True(t, inner.InFlight)

		remote.AssertNumberOfCalls(t, "ListFolders", 1)
	})

	t.Run("error passes through", func(t *testing.T) {
		boom := errors.New("boom")
		assert.ErrorIs(t, engine.Exclusive(func() error { return boom }), boom)

		_, err := engine.Sync(context.Background())
		assert.NoError(t, err)
		remote.AssertNumberOfCalls(t, "ListFolders", 2)
	})
}

func TestEngine_Run_StopsOnCancel(t *testing.T) {
	store := newMemStore()
	remote := new(MockRemote)
	engine := NewEngine(store, &fakeSessions{}, remote, slog.Default(), Config{Timeout: time.Second, Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, engine.Run(ctx))
	remote.AssertNotCalled(t, "ListFolders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
