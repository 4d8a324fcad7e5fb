package settings

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"
	domainsettings "gophvault/internal/domain/settings"

	"github.com/spf13/cobra"
)

var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Настройки приложения",
	Long:  `Локальные настройки. Не синхронизируются и сохраняются после выхода.`,
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать настройки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		s, err := app.Settings(cmd.Context())
		if err != nil {
			return err
		}
		return printSettings(cmd, s)
	},
}

var (
	autoLock       int
	clipboardClear int
	theme          string
	startMinimized bool
	startOnBoot    bool
)

var SetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Изменить настройки",
	Long:    `Меняет только заданные флаги, остальные настройки сохраняются.`,
	Example: `  gophvault settings set --auto-lock 5 --theme dark`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		s, err := app.Settings(cmd.Context())
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("auto-lock") {
			s.AutoLockMinutes = autoLock
		}
		if flags.Changed("clipboard-clear") {
			s.ClipboardClearSeconds = clipboardClear
		}
		if flags.Changed("theme") {
			s.Theme = theme
		}
		if flags.Changed("start-minimized") {
			s.StartMinimized = startMinimized
		}
		if flags.Changed("start-on-boot") {
			s.StartOnBoot = startOnBoot
		}

		saved, err := app.SaveSettings(cmd.Context(), s)
		if err != nil {
			return err
		}
		if !types.WantJSON(cmd) {
			fmt.Println("✅ Настройки сохранены")
		}
		return printSettings(cmd, saved)
	},
}

func printSettings(cmd *cobra.Command, s domainsettings.Settings) error {
	if types.WantJSON(cmd) {
		return types.PrintJSON(s)
	}
	fmt.Printf("Автоблокировка:        %d мин\n", s.AutoLockMinutes)
	fmt.Printf("Очистка буфера обмена: %d сек\n", s.ClipboardClearSeconds)
	fmt.Printf("Тема:                  %s\n", s.Theme)
	fmt.Printf("Запуск свернутым:      %v\n", s.StartMinimized)
	fmt.Printf("Запуск при старте ОС:  %v\n", s.StartOnBoot)
	return nil
}

func init() {
	SetCmd.Flags().IntVar(&autoLock, "auto-lock", 0, "автоблокировка, минут (0 - выключена)")
	SetCmd.Flags().IntVar(&clipboardClear, "clipboard-clear", 0, "очистка буфера обмена, секунд")
	SetCmd.Flags().StringVar(&theme, "theme", "", "тема (system, light, dark)")
	SetCmd.Flags().BoolVar(&startMinimized, "start-minimized", false, "запускать свернутым")
	SetCmd.Flags().BoolVar(&startOnBoot, "start-on-boot", false, "запускать при старте ОС")
}
