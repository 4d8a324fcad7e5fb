package item

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var purgeYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Переместить элемент в корзину",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.DeleteItem(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления элемента: %w", err)
		}
		fmt.Println("🗑  Элемент перемещен в корзину")
		return nil
	},
}

var RestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Восстановить элемент из корзины",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.RestoreItem(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка восстановления элемента: %w", err)
		}
		fmt.Println("♻️  Элемент восстановлен")
		return nil
	},
}

var PurgeCmd = &cobra.Command{
	Use:   "purge <id>",
	Short: "Удалить элемент безвозвратно",
	Long: `Удаляет элемент локально и, при следующей синхронизации, на сервере.
Отменить это действие нельзя.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !purgeYes {
			return fmt.Errorf("безвозвратное удаление требует флага --yes")
		}

		if err := app.PurgeItem(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления элемента: %w", err)
		}
		fmt.Println("✓ Элемент удален безвозвратно")
		return nil
	},
}

func init() {
	PurgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "подтвердить удаление")
}
