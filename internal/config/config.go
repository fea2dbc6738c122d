package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	StoreDriver     string // file | bolt | sqlite | memory
	DataDir         string
	StoreDSN        string
	LogFile         string
	LogMode         string
	ExpiryCheckSpec string
	Location        string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	driver := getenv("STORE_DRIVER", "file")
	dataDir := getenv("DATA_DIR", "./data")
	dsn := os.Getenv("STORE_DSN")
	if dsn == "" {
		switch driver {
		case "bolt":
			dsn = dataDir + "/shelflife.bolt"
		case "sqlite":
			dsn = dataDir + "/shelflife.db"
		default:
			dsn = dataDir
		}
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		StoreDriver:     driver,
		DataDir:         dataDir,
		StoreDSN:        dsn,
		LogFile:         os.Getenv("LOG_FILE"),
		LogMode:         getenv("LOG_MODE", "development"),
		ExpiryCheckSpec: getenv("EXPIRY_CHECK_SPEC", "@daily"),
		Location:        getenv("TZ_LOCATION", "Local"),
	}
	log.Printf("[config] PORT=%s STORE_DRIVER=%s STORE_DSN=%s LOG_FILE=%s EXPIRY_CHECK_SPEC=%s",
		cfg.Port, cfg.StoreDriver, cfg.StoreDSN, cfg.LogFile, cfg.ExpiryCheckSpec)
	return cfg
}
