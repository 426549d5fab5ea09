package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnv             = "development"
	defaultDBPath          = "./obracalc.db"
	defaultHost            = "127.0.0.1"
	defaultPort            = "8080"
	defaultLogMode         = "dev"
	defaultMaxHistoryItems = 50
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	DBPath          string
	Host            string
	Port            string
	LogMode         string
	PricesFile      string
	MaxHistoryItems int
}

// Load reads the .env file in the working directory (if any) and the process
// environment, and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already present in
// the environment are never overwritten by the file.
func LoadFrom(dotenvPath string) Config {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: could not read %s: %v", dotenvPath, err)
	}

	cfg := Config{
		Env:        os.Getenv("APP_ENV"),
		DBPath:     os.Getenv("DB_PATH"),
		Host:       os.Getenv("HOST"),
		Port:       os.Getenv("PORT"),
		LogMode:    os.Getenv("LOG_MODE"),
		PricesFile: strings.TrimSpace(os.Getenv("PRICES_FILE")),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogMode == "" {
		cfg.LogMode = defaultLogMode
		if !cfg.IsDev() {
			cfg.LogMode = "prod"
		}
	}

	cfg.MaxHistoryItems = defaultMaxHistoryItems
	if raw := strings.TrimSpace(os.Getenv("MAX_HISTORY_ITEMS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			log.Printf("warning: MAX_HISTORY_ITEMS=%q is invalid, using %d", raw, defaultMaxHistoryItems)
		} else {
			cfg.MaxHistoryItems = n
		}
	}

	return cfg
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Addr is the listen address for the HTTP adapter.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
