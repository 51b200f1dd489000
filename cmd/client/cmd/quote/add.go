package quote

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addCategory string

var addCmd = &cobra.Command{
	Use:   "add <текст>",
	Short: "Добавить новую цитату",
	Long: `Создание новой цитаты. Цитата остается несинхронизированной (pending)
до следующего цикла синхронизации.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		q, err := app.AddQuote(args[0], addCategory)
		if err != nil {
			return fmt.Errorf("цитата не добавлена: %w", err)
		}

		color.Green("Цитата добавлена: %s", q.ID)
		fmt.Printf("  %q — %s\n", q.Text, q.Category)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "категория цитаты")
	addCmd.MarkFlagRequired("category")
}
