package quote

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Список категорий коллекции",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		selected := app.SelectedCategory()
		for _, c := range app.Categories() {
			if c == selected {
				fmt.Printf("* %s\n", c)
				continue
			}
			fmt.Printf("  %s\n", c)
		}
		return nil
	},
}
