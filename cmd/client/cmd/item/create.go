package item

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/domain/record"

	"github.com/spf13/cobra"
)

var (
	createType   string
	createData   string
	createFolder string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать элемент",
	Long: `Создает элемент и ставит его в очередь на отправку.

Типы: login, note, card, identity.
--data - зашифрованное содержимое, "-" читает его из stdin.`,
	Example: `  gophvault item create --type login --data "$(encrypt < login.json)"
  encrypt < note.txt | gophvault item create --type note --data -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		data, err := readData(createData)
		if err != nil {
			return err
		}

		item, err := app.CreateItem(cmd.Context(), record.CreateItemRequest{
			EncryptedData: data,
			Type:          record.ItemType(createType),
			FolderID:      optional(createFolder),
		})
		if err != nil {
			return fmt.Errorf("ошибка создания элемента: %w", err)
		}

		if !types.WantJSON(cmd) {
			fmt.Println("✅ Элемент создан")
		}
		return printItem(cmd, item)
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createType, "type", "t", "", "тип элемента (login, note, card, identity)")
	CreateCmd.Flags().StringVarP(&createData, "data", "d", "", "зашифрованное содержимое или - для stdin")
	CreateCmd.Flags().StringVarP(&createFolder, "folder", "f", "", "ID папки")
	_ = CreateCmd.MarkFlagRequired("type")
	_ = CreateCmd.MarkFlagRequired("data")
}
