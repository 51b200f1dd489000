package quote

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	editText     string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Править существующую цитату",
	Long: `Правка цитаты по id. Правка заново помечает запись как
несинхронизированную: при следующем цикле она уйдет на сервер, а при
конфликте будет вытеснена серверной версией с отчетом.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		q, err := app.UpdateQuote(args[0], editText, editCategory)
		if err != nil {
			return fmt.Errorf("цитата не обновлена: %w", err)
		}

		color.Green("Цитата обновлена: %s", q.ID)
		fmt.Printf("  %q — %s\n", q.Text, q.Category)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editText, "text", "t", "", "новый текст")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "новая категория")
	editCmd.MarkFlagRequired("text")
	editCmd.MarkFlagRequired("category")
}
