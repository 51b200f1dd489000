package quote

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	domain "quotekeeper/internal/domain/quote"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать коллекцию",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		category := listCategory
		if category == "" {
			category = app.SelectedCategory()
		}

		quotes := domain.Filter(app.Quotes(), category)
		if len(quotes) == 0 {
			fmt.Println("Коллекция пуста")
			return nil
		}

		for _, q := range quotes {
			marker := " "
			if q.Pending {
				marker = color.YellowString("*")
			}
			fmt.Printf("%s %-24s %q — %s\n", marker, q.ID, q.Text, q.Category)
		}
		fmt.Printf("\nВсего: %d (* - ожидает отправки)\n", len(quotes))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "фильтр по категории")
}
