package sync

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quotekeeper/internal/app/client"
)

var watch bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с удаленным сервисом",
	Long: `Выполняет один цикл синхронизации: отправляет локальные правки,
забирает удаленную коллекцию и сводит их по политике server-wins.
С флагом --watch запускает периодическую синхронизацию до прерывания.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if watch {
			return runWatch(cmd, app)
		}

		result, err := app.Sync(cmd.Context())
		if err != nil {
			if errors.Is(err, client.ErrSyncInProgress) {
				return fmt.Errorf("синхронизация уже выполняется")
			}
			return fmt.Errorf("синхронизация не удалась: %w", err)
		}

		printResult(result)
		return nil
	},
}

func init() {
	SyncCmd.Flags().BoolVar(&watch, "watch", false, "синхронизироваться периодически до прерывания")
}

func runWatch(cmd *cobra.Command, app *client.App) error {
	fmt.Println("Периодическая синхронизация запущена, Ctrl+C для выхода")
	app.StartAutoSync(cmd.Context())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	fmt.Println("\nОстановка синхронизации")
	return nil
}

func printResult(result *client.SyncResult) {
	color.Green("Синхронизация завершена")
	fmt.Println(result.Summary())

	if len(result.Conflicts) > 0 {
		color.Yellow("Конфликты (принята версия сервера):")
		for _, c := range result.Conflicts {
			fmt.Printf("  %s: %q -> %q\n", c.Local.ID, c.Local.Text, c.Remote.Text)
		}
	}

	for _, e := range result.Errors {
		color.Red("  %s %s: %s", e.Operation, e.RecordID, e.Error)
	}

	if result.Degraded {
		color.Yellow("Снимок не сохранен на диск, изменения доступны только в этом запуске")
	}
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value("app").(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
