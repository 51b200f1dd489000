package quote

import (
	"fmt"

	"github.com/spf13/cobra"

	"quotekeeper/internal/app/client"
)

var QuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Работа с коллекцией цитат",
	Long: `Управление локальной коллекцией цитат: добавление, показ случайной
цитаты, список, категории и выбор фильтра.`,
}

func init() {
	QuoteCmd.AddCommand(addCmd)
	QuoteCmd.AddCommand(editCmd)
	QuoteCmd.AddCommand(listCmd)
	QuoteCmd.AddCommand(randomCmd)
	QuoteCmd.AddCommand(categoriesCmd)
	QuoteCmd.AddCommand(useCmd)
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value("app").(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
