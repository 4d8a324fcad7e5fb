package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для входа и блокировки хранилища
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление сессией",
	Long:  `Вход, выход, блокировка и разблокировка хранилища.`,
}
