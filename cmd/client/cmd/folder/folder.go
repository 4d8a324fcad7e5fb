package folder

import (
	"fmt"
	"os"
	"text/tabwriter"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/domain/record"

	"github.com/spf13/cobra"
)

// FolderCmd - родительская команда для операций с папками
var FolderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Управление папками",
	Long:  `Папки группируют элементы. При удалении папки элементы остаются, но без папки.`,
}

var CreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Создать папку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		folder, err := app.CreateFolder(cmd.Context(), record.FolderRequest{Name: args[0]})
		if err != nil {
			return fmt.Errorf("ошибка создания папки: %w", err)
		}
		return printFolder(cmd, "✅ Папка создана", folder)
	},
}

var RenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Переименовать папку",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		folder, err := app.UpdateFolder(cmd.Context(), args[0], record.FolderRequest{Name: args[1]})
		if err != nil {
			return fmt.Errorf("ошибка переименования папки: %w", err)
		}
		return printFolder(cmd, "✅ Папка переименована", folder)
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить папку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.DeleteFolder(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления папки: %w", err)
		}
		fmt.Println("✓ Папка удалена")
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список папок",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		folders, err := app.ListFolders(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка папок: %w", err)
		}

		if types.WantJSON(cmd) {
			if folders == nil {
				folders = []record.Folder{}
			}
			return types.PrintJSON(folders)
		}

		if len(folders) == 0 {
			fmt.Println("Папок нет")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tНазвание\tСинхр.\t\n")
		fmt.Fprintf(w, "---\t---\t---\t\n")
		for i := range folders {
			state := "✓"
			if folders[i].NeedsSync() {
				state = "ожидает"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", folders[i].ID, types.Truncate(folders[i].Name, 40), state)
		}
		return w.Flush()
	},
}

func printFolder(cmd *cobra.Command, title string, folder *record.Folder) error {
	if types.WantJSON(cmd) {
		return types.PrintJSON(folder)
	}
	fmt.Println(title)
	fmt.Printf("ID:       %s\n", folder.ID)
	fmt.Printf("Название: %s\n", folder.Name)
	return nil
}
