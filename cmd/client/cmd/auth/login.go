package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/app/client/crypto"
	"gophvault/internal/domain/session"
	"gophvault/internal/domain/sync"

	"github.com/spf13/cobra"
)

var email string

type loginOutput struct {
	Session     *session.Session `json:"session"`
	InitialSync *sync.Result     `json:"initial_sync,omitempty"`
	SyncError   string           `json:"sync_error,omitempty"`
}

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в GophVault",
	Long: `Аутентификация в облаке и первичная загрузка данных.

Из мастер-пароля локально вычисляются два хеша: один отправляется
серверу авторизации, второй используется для разблокировки хранилища.
Сам пароль никуда не передается.

Вход под другим пользователем удаляет локальные данные предыдущего.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if email == "" {
			fmt.Fprint(os.Stderr, "Email: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			email = strings.TrimSpace(line)
		}
		if email == "" {
			return fmt.Errorf("email обязателен")
		}

		password, err := types.ReadPassword("Мастер-пароль: ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("пароль обязателен")
		}

		fmt.Fprintln(os.Stderr, "Аутентификация...")
		res, err := app.Login(cmd.Context(), email,
			crypto.DeriveAuthHash(email, password),
			crypto.DeriveMasterKeyHash(email, password),
		)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		if types.WantJSON(cmd) {
			out := loginOutput{Session: res.Session, InitialSync: res.InitialSync}
			if res.SyncError != nil {
				out.SyncError = res.SyncError.Error()
			}
			return types.PrintJSON(out)
		}

		fmt.Println("✅ Вход выполнен успешно!")
		fmt.Printf("Пользователь: %s\n", res.Session.Email)

		switch {
		case res.SyncError != nil:
			fmt.Printf("⚠️  Предупреждение: ошибка синхронизации: %v\n", res.SyncError)
			fmt.Println("Вы можете продолжить работу в офлайн-режиме")
		case res.InitialSync != nil:
			fmt.Printf("✓ Загружено папок: %d, элементов: %d\n",
				res.InitialSync.PulledFolders, res.InitialSync.PulledItems)
		}
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&email, "email", "e", "", "email пользователя")
}
