package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultPageSize   = 10
)

// Config - конфигурация симулируемого удаленного сервиса цитат
type Config struct {
	Env        string
	RunAddress string
	LogLevel   string
	PageSize   int
}

// MustLoad загружает конфигурацию сервера из .env и переменных окружения
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PAGE_SIZE", defaultPageSize)

	config := &Config{
		Env:        viper.GetString("APP_ENV"),
		RunAddress: viper.GetString("RUN_ADDRESS"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		PageSize:   viper.GetInt("PAGE_SIZE"),
	}

	// Страница списка не бывает больше десяти элементов
	if config.PageSize <= 0 || config.PageSize > 10 {
		config.PageSize = defaultPageSize
	}

	return config
}
