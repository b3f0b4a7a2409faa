package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	DBPath            string
	JWTSecret         string
	OpenWeatherAPIKey string
	DataGovAPIKey     string
	PriceTableCSV     string
	PriceTableXLSX    string
	QualityStrategy   string // baseline|adjusted
	AuthDevBypass     bool
	Debug             bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		DBPath:            get("DB_PATH", "agrilink.db"),
		JWTSecret:         get("JWT_SECRET", "agrilink-dev-secret"),
		OpenWeatherAPIKey: get("OPENWEATHER_API_KEY", ""),
		DataGovAPIKey:     get("DATA_GOV_API_KEY", ""),
		PriceTableCSV:     get("PRICE_TABLE_CSV", ""),
		PriceTableXLSX:    get("PRICE_TABLE_XLSX", ""),
		QualityStrategy:   get("QUALITY_STRATEGY", "baseline"),
		AuthDevBypass:     get("AUTH_DEV_BYPASS", "false") == "true",
		Debug:             get("DEBUG", "false") == "true",
	}
	return cfg
}
