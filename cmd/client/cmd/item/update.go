package item

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/domain/record"

	"github.com/spf13/cobra"
)

var (
	updateType   string
	updateData   string
	updateFolder string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить элемент",
	Long: `Заменяет содержимое элемента. Не заданные флаги берутся из текущей версии.
--folder "" убирает элемент из папки.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		current, err := app.GetItem(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения элемента: %w", err)
		}

		req := record.UpdateItemRequest{
			EncryptedData: current.EncryptedData,
			Type:          current.Type,
			FolderID:      current.FolderID,
		}
		flags := cmd.Flags()
		if flags.Changed("data") {
			if req.EncryptedData, err = readData(updateData); err != nil {
				return err
			}
		}
		if flags.Changed("type") {
			req.Type = record.ItemType(updateType)
		}
		if flags.Changed("folder") {
			req.FolderID = optional(updateFolder)
		}

		item, err := app.UpdateItem(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("ошибка изменения элемента: %w", err)
		}

		if !types.WantJSON(cmd) {
			fmt.Println("✅ Элемент изменен")
		}
		return printItem(cmd, item)
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateType, "type", "t", "", "новый тип элемента")
	UpdateCmd.Flags().StringVarP(&updateData, "data", "d", "", "новое зашифрованное содержимое или - для stdin")
	UpdateCmd.Flags().StringVarP(&updateFolder, "folder", "f", "", "ID папки")
}
