package quote

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var randomCategory string

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Показать случайную цитату",
	Long: `Показывает случайную цитату из выбранной категории. Без флага
используется категория, сохраненная командой use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		category := randomCategory
		if category == "" {
			category = app.SelectedCategory()
		}

		q, err := app.Random(category)
		if err != nil {
			return fmt.Errorf("нечего показать: %w", err)
		}

		fmt.Printf("%q\n", q.Text)
		color.Cyan("   — %s", q.Category)
		return nil
	},
}

func init() {
	randomCmd.Flags().StringVarP(&randomCategory, "category", "c", "", "категория")
}
