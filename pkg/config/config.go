package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment: catalog credentials,
// upload settings and crawl tuning. Operational paths come in via flags on
// the individual binaries.
type Config struct {
	IcecatUser string
	IcecatPass string
	IcecatLang string

	DriveTokenPath string
	DriveFolder    string

	CrawlName     string
	Threads       int
	DelayMs       int
	RandomDelayMs int
	EnrichDelayMs int
}

// Load reads an optional .env file and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		IcecatUser: os.Getenv("ICECAT_USER"),
		IcecatPass: os.Getenv("ICECAT_PASS"),
		IcecatLang: getEnv("ICECAT_LANG", "en"),

		DriveTokenPath: os.Getenv("DRIVE_TOKEN_PATH"),
		DriveFolder:    getEnv("DRIVE_FOLDER", "prisjakt"),

		CrawlName:     getEnv("CRAWL_NAME", "prisjakt"),
		Threads:       getEnvInt("THREADS", 16),
		DelayMs:       getEnvInt("DELAY_MS", 300),
		RandomDelayMs: getEnvInt("RANDOM_DELAY_MS", 1000),
		EnrichDelayMs: getEnvInt("ENRICH_DELAY_MS", 500),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
