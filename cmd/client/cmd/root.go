// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	quotecmd "quotekeeper/cmd/client/cmd/quote"
	synccmd "quotekeeper/cmd/client/cmd/sync"
	transfercmd "quotekeeper/cmd/client/cmd/transfer"
	"quotekeeper/internal/app/client"
	"quotekeeper/internal/app/client/config"
	"quotekeeper/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "quotekeeper",
	Short: "QuoteKeeper - менеджер коллекции цитат",
	Long: `QuoteKeeper хранит коллекцию цитат локально, показывает случайную
цитату, фильтрует по категориям и периодически сверяет локальные правки
с удаленной коллекцией по политике server-wins.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	defer func() {
		if app != nil {
			app.Close()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	// Загружаем конфигурацию
	cfg = config.MustLoad()

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	// Настраиваем логгер
	log = logger.New(cfg.Env)

	// Создаем приложение
	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), "app", app))
	return nil
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес удаленного сервиса цитат")

	rootCmd.AddCommand(quotecmd.QuoteCmd)
	rootCmd.AddCommand(synccmd.SyncCmd)
	rootCmd.AddCommand(transfercmd.ImportCmd)
	rootCmd.AddCommand(transfercmd.ExportCmd)
}
