package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"gophvault/internal/apperr"
	"gophvault/internal/domain/outbox"
	"gophvault/internal/domain/record"
	"gophvault/internal/domain/session"

	"golang.org/x/exp/slog"
)

// Servicer интерфейс движка синхронизации
type Servicer interface {
	// Sync выполняет полный цикл: отправка очереди, затем загрузка изменений
	Sync(ctx context.Context) (*Result, error)
	// InitialSync загружает все данные после входа и очищает очередь
	InitialSync(ctx context.Context) (*Result, error)
	Status(ctx context.Context) (Status, error)
	CheckConnectivity(ctx context.Context) bool
	Reset()
	Exclusive(fn func() error) error
}

// errRecordGone - запись удалена локально до отправки, ее удаление придет отдельной записью очереди
var errRecordGone = errors.New("record no longer exists locally")

// Engine оркестрирует циклы синхронизации. Одновременно выполняется не больше одного цикла.
type Engine struct {
	store    Store
	sessions Sessions
	remote   Remote
	log      *slog.Logger
	config   Config
	now      func() time.Time

	mu     gosync.RWMutex
	status Status
	// exclusive - выполняется операция, при которой цикл не должен стартовать
	exclusive bool
}

func NewEngine(store Store, sessions Sessions, remote Remote, log *slog.Logger, config Config) *Engine {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}

	return &Engine{
		store:    store,
		sessions: sessions,
		remote:   remote,
		log:      log.With(slog.String("component", "sync_engine")),
		config:   config,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sync запускает цикл синхронизации. Если цикл уже идет, сразу возвращает
// текущий статус с InFlight=true.
func (e *Engine) Sync(ctx context.Context) (*Result, error) {
	return e.run(ctx, "sync", e.cycle)
}

// InitialSync загружает все данные сервера без фильтра по времени, затем
// очищает очередь и отмечает время синхронизации.
func (e *Engine) InitialSync(ctx context.Context) (*Result, error) {
	return e.run(ctx, "initial_sync", e.initialCycle)
}

func (e *Engine) run(ctx context.Context, name string, fn func(context.Context, *Result) error) (*Result, error) {
	e.mu.Lock()
	if e.status.IsSyncing || e.exclusive {
		inFlight := e.status
		e.mu.Unlock()
		e.log.Debug("синхронизация уже выполняется", slog.String("op", name))

		status, err := e.complete(ctx, inFlight)
		if err != nil {
			e.log.Warn("не удалось получить статус", slog.String("error", err.Error()))
		}
		return &Result{InFlight: true, Status: status}, nil
	}
	e.status.IsSyncing = true
	e.mu.Unlock()

	res := &Result{StartTime: e.now()}
	log := e.log.With(slog.String("op", name))
	log.Info("начало синхронизации")

	var err error
	func() {
		defer func() {
			e.mu.Lock()
			e.status.IsSyncing = false
			e.mu.Unlock()
		}()

		cycleCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()

		err = fn(cycleCtx, res)
	}()

	res.EndTime = e.now()
	res.Duration = res.EndTime.Sub(res.StartTime)

	if err != nil {
		if errors.Is(err, apperr.ErrNetwork) {
			e.setOnline(false)
		}
		log.Error("синхронизация завершилась ошибкой",
			slog.String("error", err.Error()),
			slog.Int("pushed", res.Pushed),
			slog.Int("failed", len(res.Errors)),
		)
	} else {
		e.setOnline(true)
		log.Info("синхронизация завершена",
			slog.Int("pushed", res.Pushed),
			slog.Int("failed", len(res.Errors)),
			slog.Int("pulled_folders", res.PulledFolders),
			slog.Int("pulled_items", res.PulledItems),
			slog.Duration("duration", res.Duration),
		)
	}

	status, statusErr := e.Status(ctx)
	if statusErr != nil {
		log.Warn("не удалось получить статус", slog.String("error", statusErr.Error()))
	}
	res.Status = status

	return res, err
}

func (e *Engine) cycle(ctx context.Context, res *Result) error {
	sess, err := e.session(ctx)
	if err != nil {
		return err
	}

	if err := e.push(ctx, sess, res); err != nil {
		return err
	}
	if err := e.pull(ctx, sess, sess.LastSyncAt, res); err != nil {
		return err
	}
	return e.finish(ctx)
}

func (e *Engine) initialCycle(ctx context.Context, res *Result) error {
	sess, err := e.session(ctx)
	if err != nil {
		return err
	}

	if err := e.pull(ctx, sess, nil, res); err != nil {
		return err
	}
	if err := e.store.ClearOutbox(ctx); err != nil {
		return err
	}
	return e.finish(ctx)
}

func (e *Engine) session(ctx context.Context) (*session.Session, error) {
	sess, err := e.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperr.Auth("not logged in")
	}
	return e.sessions.EnsureValid(ctx, sess)
}

func (e *Engine) finish(ctx context.Context) error {
	at := e.now()
	if err := e.sessions.UpdateLastSync(ctx, at); err != nil {
		return err
	}

	e.mu.Lock()
	e.status.LastSyncAt = &at
	e.mu.Unlock()
	return nil
}

// push отправляет очередь по порядку. Ошибка отдельной записи не прерывает
// отправку, запись остается в очереди до следующего цикла.
func (e *Engine) push(ctx context.Context, sess *session.Session, res *Result) error {
	entries, err := e.store.ListPending(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return apperr.Wrap(apperr.ErrSync, "отправка прервана", err)
		}

		pushErr := e.pushEntry(ctx, sess, entry)
		switch {
		case pushErr == nil:
		case errors.Is(pushErr, apperr.ErrStorage), errors.Is(pushErr, apperr.ErrSerialization):
			return pushErr
		case errors.Is(pushErr, errRecordGone):
			e.log.Debug("запись удалена до отправки",
				slog.Int64("seq", entry.SequenceID),
				slog.String("record_id", entry.RecordID),
			)
		default:
			e.log.Warn("не удалось отправить изменение",
				slog.Int64("seq", entry.SequenceID),
				slog.String("kind", entry.Kind.String()),
				slog.String("record_id", entry.RecordID),
				slog.String("error", pushErr.Error()),
			)
			res.Errors = append(res.Errors, PushError{
				SequenceID: entry.SequenceID,
				RecordID:   entry.RecordID,
				Kind:       entry.Kind,
				Operation:  entry.Operation,
				Error:      pushErr.Error(),
				Timestamp:  e.now(),
			})
			continue
		}

		if err := e.store.Dequeue(ctx, entry.SequenceID); err != nil {
			return err
		}
		if entry.Operation != outbox.OpDelete && pushErr == nil {
			if err := e.store.MarkSynced(ctx, entry.Kind, entry.RecordID, e.now()); err != nil {
				return err
			}
		}
		res.Pushed++
	}
	return nil
}

func (e *Engine) pushEntry(ctx context.Context, sess *session.Session, entry outbox.Entry) error {
	switch entry.Operation {
	case outbox.OpCreate, outbox.OpUpdate:
		return e.pushUpsert(ctx, sess, entry)
	case outbox.OpDelete:
		return e.remote.Delete(ctx, sess.AccessToken, entry.Kind, entry.RecordID)
	default:
		return apperr.InvalidOperation(fmt.Sprintf("неизвестная операция %q", entry.Operation))
	}
}

// pushUpsert отправляет текущее состояние записи, а не снимок на момент постановки в очередь
func (e *Engine) pushUpsert(ctx context.Context, sess *session.Session, entry outbox.Entry) error {
	switch entry.Kind {
	case record.KindItem:
		item, err := e.store.GetItem(ctx, entry.RecordID)
		if errors.Is(err, apperr.ErrNotFound) {
			return errRecordGone
		}
		if err != nil {
			return err
		}
		return e.remote.UpsertItem(ctx, sess.AccessToken, item.ToDTO(sess.UserID))
	case record.KindFolder:
		folder, err := e.store.GetFolder(ctx, entry.RecordID)
		if errors.Is(err, apperr.ErrNotFound) {
			return errRecordGone
		}
		if err != nil {
			return err
		}
		return e.remote.UpsertFolder(ctx, sess.AccessToken, folder.ToDTO(sess.UserID))
	default:
		return apperr.InvalidOperation(fmt.Sprintf("неизвестный вид записи %q", entry.Kind))
	}
}

// pull загружает изменения сервера: сначала папки, затем элементы.
// Любая ошибка прерывает цикл. Конфликты разрешаются в пользу сервера.
func (e *Engine) pull(ctx context.Context, sess *session.Session, since *time.Time, res *Result) error {
	folderRows, err := e.remote.ListFolders(ctx, sess.AccessToken, sess.UserID, since)
	if err != nil {
		return err
	}

	now := e.now()
	folders := make([]record.Folder, 0, len(folderRows))
	for i := range folderRows {
		folders = append(folders, folderRows[i].ToFolder(now))
	}
	if err := e.store.BulkUpsertFolders(ctx, folders); err != nil {
		return err
	}
	res.PulledFolders = len(folders)

	itemRows, err := e.remote.ListItems(ctx, sess.AccessToken, sess.UserID, since)
	if err != nil {
		return err
	}

	now = e.now()
	items := make([]record.Item, 0, len(itemRows))
	for i := range itemRows {
		items = append(items, itemRows[i].ToItem(now))
	}
	if err := e.store.BulkUpsertItems(ctx, items); err != nil {
		return err
	}
	res.PulledItems = len(items)

	return nil
}

// Status возвращает снимок статуса и длину очереди
func (e *Engine) Status(ctx context.Context) (Status, error) {
	e.mu.RLock()
	status := e.status
	e.mu.RUnlock()

	return e.complete(ctx, status)
}

// complete дополняет снимок статуса длиной очереди и, если цикла в процессе
// еще не было, временем последней синхронизации из сессии
func (e *Engine) complete(ctx context.Context, status Status) (Status, error) {
	pending, err := e.store.CountPending(ctx)
	if err != nil {
		return status, err
	}
	status.PendingChanges = pending

	if status.LastSyncAt == nil {
		sess, err := e.sessions.Current(ctx)
		if err != nil {
			return status, err
		}
		if sess != nil {
			status.LastSyncAt = sess.LastSyncAt
		}
	}
	return status, nil
}

// CheckConnectivity проверяет доступность сервера и запоминает результат в статусе
func (e *Engine) CheckConnectivity(ctx context.Context) bool {
	online, err := e.remote.Ping(ctx)
	if err != nil {
		e.log.Debug("сервер недоступен", slog.String("error", err.Error()))
	}
	e.setOnline(online)
	return online
}

// Exclusive выполняет fn, пока цикл синхронизации не идет и не может начаться.
// Если цикл уже выполняется, fn не вызывается.
func (e *Engine) Exclusive(fn func() error) error {
	e.mu.Lock()
	if e.status.IsSyncing || e.exclusive {
		e.mu.Unlock()
		return apperr.InvalidOperation("синхронизация выполняется, повторите позже")
	}
	e.exclusive = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.exclusive = false
		e.mu.Unlock()
	}()
	return fn()
}

// Reset сбрасывает статус после выхода пользователя
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = Status{IsSyncing: e.status.IsSyncing}
}

// Run синхронизирует с заданным интервалом до отмены ctx.
// Без сохраненной сессии тик пропускается.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.config.Interval)
	defer ticker.Stop()

	e.log.Info("автосинхронизация запущена", slog.Duration("interval", e.config.Interval))

	for {
		select {
		case <-ctx.Done():
			e.log.Info("автосинхронизация остановлена")
			return nil
		case <-ticker.C:
			sess, err := e.sessions.Current(ctx)
			if err != nil {
				e.log.Warn("не удалось прочитать сессию", slog.String("error", err.Error()))
				continue
			}
			if sess == nil {
				continue
			}
			// ошибки уже записаны в лог внутри run
			_, _ = e.Sync(ctx)
		}
	}
}

func (e *Engine) setOnline(online bool) {
	e.mu.Lock()
	e.status.IsOnline = online
	e.mu.Unlock()
}
