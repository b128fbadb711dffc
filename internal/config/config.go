package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config reúne la configuración leída del entorno (.env incluido)
type Config struct {
	Port        string
	APIBase     string
	Coins       []string
	Quote       string
	HTTPTimeout time.Duration
	CORSOrigins []string
	LogLevel    logrus.Level
	// RefreshInterval en cero desactiva la recarga periódica
	RefreshInterval time.Duration
}

// Load lee las variables de entorno y aplica los valores por defecto
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		APIBase:     getEnv("TICKER_API_BASE", "https://api-pub.bitfinex.com/v2/"),
		Coins:       splitList(getEnv("TICKER_COINS", "BTC,ETH,XRP,LTC")),
		Quote:       getEnv("TICKER_QUOTE", "USD"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	timeout, err := time.ParseDuration(getEnv("TICKER_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("TICKER_HTTP_TIMEOUT inválido: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refresh, err := time.ParseDuration(getEnv("TICKER_REFRESH_INTERVAL", "0s"))
	if err != nil || refresh < 0 {
		return Config{}, fmt.Errorf("TICKER_REFRESH_INTERVAL inválido: %q", getEnv("TICKER_REFRESH_INTERVAL", "0s"))
	}
	cfg.RefreshInterval = refresh

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL inválido: %w", err)
	}
	cfg.LogLevel = level

	if len(cfg.Coins) == 0 {
		return Config{}, fmt.Errorf("TICKER_COINS no puede estar vacío")
	}

	if !strings.HasSuffix(cfg.APIBase, "/") {
		cfg.APIBase += "/"
	}

	return cfg, nil
}

// NewLogger crea el logger de la aplicación con el nivel configurado
func NewLogger(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
