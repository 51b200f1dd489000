package quote

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <категория>",
	Short: "Выбрать категорию по умолчанию",
	Long: `Сохраняет фильтр по категории между запусками. Категория all
снимает фильтр.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.SelectCategory(args[0]); err != nil {
			return err
		}

		color.Green("Выбрана категория: %s", args[0])
		fmt.Println("Команды list и random теперь используют этот фильтр")
		return nil
	},
}
