package item

import (
	"fmt"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/domain/record"

	"github.com/spf13/cobra"
)

var (
	listType   string
	listFolder string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список элементов",
	Long:  `Активные элементы, последние измененные сверху. Элементы в корзине не показываются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		items, err := app.ListItems(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка элементов: %w", err)
		}

		return printItems(cmd, filter(items), "Элементы не найдены")
	},
}

var TrashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Элементы в корзине",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		items, err := app.ListTrash(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения корзины: %w", err)
		}
		return printItems(cmd, items, "Корзина пуста")
	},
}

func filter(items []record.Item) []record.Item {
	if listType == "" && listFolder == "" {
		return items
	}

	out := make([]record.Item, 0, len(items))
	for _, item := range items {
		if listType != "" && string(item.Type) != listType {
			continue
		}
		if listFolder != "" && (item.FolderID == nil || *item.FolderID != listFolder) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func init() {
	ListCmd.Flags().StringVarP(&listType, "type", "t", "", "фильтр по типу элемента")
	ListCmd.Flags().StringVarP(&listFolder, "folder", "f", "", "фильтр по ID папки")
}
