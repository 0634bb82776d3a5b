package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера и ограничения входных параметров
type Config struct {
	Port            int
	Env             string
	LogLevel        string
	MaxHousePrice   float64
	MaxAmount       float64
	MaxRate         float64
	MaxTermYears    int
	MaxYears        int
	MaxBalanceCap   float64
	OTELEndpoint    string
	OTELServiceName string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		Env:             getEnvString("ENV", "development"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		MaxHousePrice:   getEnvFloat("MAX_HOUSE_PRICE", 1e9),
		MaxAmount:       getEnvFloat("MAX_AMOUNT", 1e9),
		MaxRate:         getEnvFloat("MAX_RATE", 2.0),
		MaxTermYears:    getEnvInt("MAX_TERM_YEARS", 40),
		MaxYears:        getEnvInt("MAX_YEARS", 100),
		MaxBalanceCap:   getEnvFloat("MAX_BALANCE_CAP", 1e15),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "mcp-wealth-sim"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// BalanceCap возвращает верхнюю границу стоимости портфеля
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
