package item

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Показать элемент",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		item, err := app.GetItem(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения элемента: %w", err)
		}
		return printItem(cmd, item)
	},
}
