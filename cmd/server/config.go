package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries all server settings, parsed from the environment. A
// .env file in the working directory is loaded first when present.
type Config struct {
	Env            string `env:"COURTSIDE_ENV" envDefault:"development"`
	Addr           string `env:"COURTSIDE_ADDR" envDefault:":8080"`
	DBPath         string `env:"COURTSIDE_DB" envDefault:"courtside.db"`
	StaticDir      string `env:"COURTSIDE_STATIC_DIR" envDefault:"static"`
	AdminEmail     string `env:"COURTSIDE_ADMIN_EMAIL"`
	AdminPassword  string `env:"COURTSIDE_ADMIN_PASSWORD"`
	ResendKey      string `env:"COURTSIDE_RESEND_KEY"`
	EmailFrom      string `env:"COURTSIDE_RESEND_FROM" envDefault:"Courtside <noreply@courtside.example>"`
	NotifyEmail    string `env:"COURTSIDE_NOTIFY_EMAIL"`
	DisableLocking bool   `env:"COURTSIDE_DISABLE_LOCKING" envDefault:"false"`
}

// loadConfig reads .env (if any) and then the process environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
