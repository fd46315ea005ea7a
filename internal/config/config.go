// Package config reads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string // "development" or "production"
	Addr string

	// SQLitePath empty means an in-memory store.
	SQLitePath string
	Seed       bool

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

// Load reads config from the environment. A .env file is loaded first if
// present; real environment variables win over .env values.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:           getenv("APP_ENV", "development"),
		Addr:          getenv("ADDR", ":8080"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		Seed:          os.Getenv("SEED_DEMO_DATA") == "1",
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-5"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		EmailFrom:     getenv("EMAIL_FROM", "rfp@procurement.example.com"),
	}
}

func (c Config) Production() bool { return c.Env == "production" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
