// Package settings - локальные настройки приложения. Не синхронизируются.
package settings

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

type Settings struct {
	AutoLockMinutes       int    `json:"auto_lock_minutes" doc:"Автоблокировка, минут (0 - выключена)"`
	ClipboardClearSeconds int    `json:"clipboard_clear_seconds" doc:"Очистка буфера обмена, секунд"`
	StartMinimized        bool   `json:"start_minimized"`
	StartOnBoot           bool   `json:"start_on_boot"`
	Theme                 string `json:"theme" enum:"system,light,dark"`
}

// Default возвращает настройки новой установки
func Default() Settings {
	return Settings{
		AutoLockMinutes:       15,
		ClipboardClearSeconds: 30,
		Theme:                 ThemeSystem,
	}
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.AutoLockMinutes, validation.Min(0), validation.Max(1440)),
		validation.Field(&s.ClipboardClearSeconds, validation.Min(0), validation.Max(600)),
		validation.Field(&s.Theme, validation.Required, validation.In(ThemeSystem, ThemeLight, ThemeDark)),
	)
}
