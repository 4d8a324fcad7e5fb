package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gophvault/cmd/client/cmd/types"
	"gophvault/internal/app/client"
	"gophvault/internal/app/client/config"
	"gophvault/internal/utils/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string

	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "gophvault",
	Short: "GophVault - локальное зашифрованное хранилище секретов",
	Long: `GophVault хранит зашифрованные элементы (логины, заметки, карты,
личные данные) в локальной базе и синхронизирует их с облаком.

Все изменения сначала попадают в локальную очередь, поэтому клиент
работает и без сети. Синхронизация выполняется командой sync.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.SupabaseURL = serverURL
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	log := logger.FromConfig(cfg)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env-файл с настройками (по умолчанию .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL проекта Supabase")
}
