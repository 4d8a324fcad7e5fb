package item

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/domain/record"

	"github.com/spf13/cobra"
)

// ItemCmd - родительская команда для операций с элементами хранилища
var ItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Управление элементами",
	Long: `Создание, просмотр, изменение и удаление зашифрованных элементов.

Содержимое элемента передается как уже зашифрованная строка и
хранится без изменений. Удаленные элементы попадают в корзину.`,
}

const timeLayout = "2006-01-02 15:04"

// readData возвращает значение флага --data, "-" означает чтение из stdin
func readData(data string) (string, error) {
	if data != "-" {
		return data, nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func printItem(cmd *cobra.Command, item *record.Item) error {
	if types.WantJSON(cmd) {
		return types.PrintJSON(item)
	}

	fmt.Printf("ID:        %s\n", item.ID)
	fmt.Printf("Тип:       %s\n", item.Type)
	if item.FolderID != nil {
		fmt.Printf("Папка:     %s\n", *item.FolderID)
	}
	fmt.Printf("Создан:    %s\n", item.CreatedAt.Local().Format(timeLayout))
	fmt.Printf("Изменен:   %s\n", item.LocalUpdatedAt.Local().Format(timeLayout))
	fmt.Printf("Синхр.:    %s\n", syncState(item))
	if item.DeletedAt != nil {
		fmt.Printf("В корзине: с %s\n", item.DeletedAt.Local().Format(timeLayout))
	}
	fmt.Printf("Данные:    %s\n", item.EncryptedData)
	return nil
}

func printItems(cmd *cobra.Command, items []record.Item, empty string) error {
	if types.WantJSON(cmd) {
		if items == nil {
			items = []record.Item{}
		}
		return types.PrintJSON(items)
	}

	if len(items) == 0 {
		fmt.Println(empty)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tТип\tПапка\tИзменен\tСинхр.\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")
	for i := range items {
		item := &items[i]
		folder := "-"
		if item.FolderID != nil {
			folder = types.Truncate(*item.FolderID, 13)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			item.ID,
			item.Type,
			folder,
			item.LocalUpdatedAt.Local().Format(timeLayout),
			syncState(item),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nВсего элементов: %d\n", len(items))
	return nil
}

func syncState(item *record.Item) string {
	if item.NeedsSync() {
		return "ожидает"
	}
	return "✓ " + item.SyncedAt.Local().Format(time.TimeOnly)
}
