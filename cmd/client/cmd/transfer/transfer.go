package transfer

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quotekeeper/internal/app/client"
)

var ImportCmd = &cobra.Command{
	Use:   "import <файл>",
	Short: "Импорт цитат из JSON-файла",
	Long: `Читает JSON-массив цитат и добавляет их в коллекцию. Записи с тем же
идентификатором заменяются, непригодные элементы пропускаются.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		summary, err := app.ImportFile(args[0])
		if err != nil {
			return fmt.Errorf("импорт не удался: %w", err)
		}

		color.Green("Импортировано цитат: %d", summary.Imported)
		if summary.Dropped > 0 {
			color.Yellow("Пропущено непригодных элементов: %d", summary.Dropped)
		}
		return nil
	},
}

var ExportCmd = &cobra.Command{
	Use:   "export <файл>",
	Short: "Экспорт коллекции в JSON-файл",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.ExportFile(args[0]); err != nil {
			return fmt.Errorf("экспорт не удался: %w", err)
		}

		color.Green("Коллекция сохранена в %s", args[0])
		return nil
	},
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value("app").(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
