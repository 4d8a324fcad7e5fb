package auth

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/app/client/crypto"

	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить локальные данные",
	Long: `Завершает сессию и удаляет локальную базу, включая очередь
неотправленных изменений. Настройки приложения сохраняются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}
		fmt.Println("✓ Выход выполнен, локальные данные удалены")
		return nil
	},
}

var UnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Разблокировать хранилище",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		sess, err := app.Session(cmd.Context())
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("сессия не найдена. Выполните: gophvault auth login")
		}

		password, err := types.ReadPassword("Мастер-пароль: ")
		if err != nil {
			return err
		}

		if _, err := app.Unlock(cmd.Context(), crypto.DeriveMasterKeyHash(sess.Email, password)); err != nil {
			return fmt.Errorf("не удалось разблокировать: %w", err)
		}
		fmt.Println("🔓 Хранилище разблокировано")
		return nil
	},
}

var LockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Заблокировать хранилище",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Lock(); err != nil {
			return err
		}
		fmt.Println("🔒 Хранилище заблокировано")
		return nil
	},
}

type whoami struct {
	LoggedIn bool   `json:"logged_in"`
	Locked   bool   `json:"locked"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Текущий пользователь и состояние блокировки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		sess, err := app.Session(cmd.Context())
		if err != nil {
			return err
		}
		locked, err := app.IsLocked(cmd.Context())
		if err != nil {
			return err
		}

		out := whoami{Locked: locked}
		if sess != nil {
			out.LoggedIn = true
			out.UserID = sess.UserID
			out.Email = sess.Email
		}

		if types.WantJSON(cmd) {
			return types.PrintJSON(out)
		}

		if !out.LoggedIn {
			fmt.Println("Вход не выполнен")
			return nil
		}
		state := "🔓 разблокировано"
		if locked {
			state = "🔒 заблокировано"
		}
		fmt.Printf("%s (%s), хранилище %s\n", out.Email, out.UserID, state)
		if sess.LastSyncAt != nil {
			fmt.Printf("Последняя синхронизация: %s\n", sess.LastSyncAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
