package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"gophvault/internal/domain/settings"
)

type SettingsRepository struct {
	db *Storage
}

func NewSettingsRepository(db *Storage) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings возвращает значения по умолчанию, если строка настроек отсутствует
func (r *SettingsRepository) GetSettings(ctx context.Context) (settings.Settings, error) {
	out := settings.Default()
	err := r.db.withTx(ctx, "get settings", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT auto_lock_minutes, clipboard_clear_seconds, start_minimized, start_on_boot, theme
             FROM app_settings WHERE id = 1`,
		).Scan(&out.AutoLockMinutes, &out.ClipboardClearSeconds, &out.StartMinimized, &out.StartOnBoot, &out.Theme)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	})
	return out, err
}

func (r *SettingsRepository) SaveSettings(ctx context.Context, s settings.Settings) error {
	return r.db.withTx(ctx, "save settings", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO app_settings (id, auto_lock_minutes, clipboard_clear_seconds, start_minimized, start_on_boot, theme)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    auto_lock_minutes       = excluded.auto_lock_minutes,
    clipboard_clear_seconds = excluded.clipboard_clear_seconds,
    start_minimized         = excluded.start_minimized,
    start_on_boot           = excluded.start_on_boot,
    theme                   = excluded.theme`,
			s.AutoLockMinutes, s.ClipboardClearSeconds, s.StartMinimized, s.StartOnBoot, s.Theme)
		return err
	})
}
