package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/app/client"
	"gophvault/internal/apperr"

	"github.com/spf13/cobra"
)

const shownErrors = 3

var (
	syncStatus   bool
	pingServer   bool
	showUnsynced bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с облаком",
	Long: `Отправляет очередь локальных изменений и загружает изменения с сервера.

Без сети изменения остаются в очереди и будут отправлены при следующей
синхронизации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		switch {
		case syncStatus:
			return showSyncStatus(cmd, app)
		case pingServer:
			return ping(cmd, app)
		case showUnsynced:
			return unsynced(cmd, app)
		}
		return runSync(cmd, app)
	},
}

func runSync(cmd *cobra.Command, app *client.App) error {
	result, err := app.TriggerSync(cmd.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNetworkUnavailable) {
			return fmt.Errorf("%w. Изменения сохранены локально", err)
		}
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	if types.WantJSON(cmd) {
		return types.PrintJSON(result)
	}

	if result.InFlight {
		fmt.Println("⏳ Синхронизация уже выполняется")
		return nil
	}

	fmt.Println("✅ Синхронизация завершена!")
	fmt.Printf("Время выполнения: %v\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("Отправлено на сервер: %d\n", result.Pushed)
	fmt.Printf("Загружено с сервера: папок %d, элементов %d\n", result.PulledFolders, result.PulledItems)

	if len(result.Errors) > 0 {
		fmt.Printf("⚠️  Не отправлено: %d (останутся в очереди)\n", len(result.Errors))
		for i, e := range result.Errors {
			if i == shownErrors {
				fmt.Printf("  ... и еще %d\n", len(result.Errors)-shownErrors)
				break
			}
			fmt.Printf("  • %s %s %s: %s\n", e.Operation, e.Kind, e.RecordID, e.Error)
		}
	}
	return nil
}

func showSyncStatus(cmd *cobra.Command, app *client.App) error {
	status, err := app.SyncStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("ошибка получения статуса: %w", err)
	}

	if types.WantJSON(cmd) {
		return types.PrintJSON(status)
	}

	fmt.Println("=== Статус синхронизации ===")
	fmt.Printf("  В очереди изменений: %d\n", status.PendingChanges)
	if status.LastSyncAt != nil {
		fmt.Printf("  Последняя синхронизация: %s\n", status.LastSyncAt.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("  Последняя синхронизация: никогда")
	}
	if status.IsSyncing {
		fmt.Println("  ⏳ Выполняется синхронизация")
	}
	return nil
}

func ping(cmd *cobra.Command, app *client.App) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	online := app.CheckConnectivity(ctx)
	if types.WantJSON(cmd) {
		return types.PrintJSON(map[string]bool{"online": online})
	}

	if online {
		fmt.Println("🌐 Сервер доступен")
	} else {
		fmt.Println("❌ Сервер недоступен")
	}
	return nil
}

func unsynced(cmd *cobra.Command, app *client.App) error {
	u, err := app.ListUnsynced(cmd.Context())
	if err != nil {
		return err
	}

	if types.WantJSON(cmd) {
		return types.PrintJSON(u)
	}

	if len(u.Items) == 0 && len(u.Folders) == 0 {
		fmt.Println("✓ Все записи синхронизированы")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Вид\tID\tИзменен\t\n")
	fmt.Fprintf(w, "---\t---\t---\t\n")
	for _, f := range u.Folders {
		fmt.Fprintf(w, "folder\t%s\t%s\t\n", f.ID, f.LocalUpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	for _, i := range u.Items {
		fmt.Fprintf(w, "item\t%s\t%s\t\n", i.ID, i.LocalUpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать статус синхронизации")
	SyncCmd.Flags().BoolVar(&pingServer, "ping", false, "проверить доступность сервера")
	SyncCmd.Flags().BoolVar(&showUnsynced, "unsynced", false, "показать несинхронизированные записи")
	SyncCmd.MarkFlagsMutuallyExclusive("status", "ping", "unsynced")
}
