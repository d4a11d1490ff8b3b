package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	App      *App
	Database *Database
	HTTP     *HTTP
	Catalog  *Catalog
	Auth     *Auth
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN      string `env:"DATABASE_URI"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"8"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Catalog points the order service at the product service.
type Catalog struct {
	BaseURL string        `env:"PRODUCT_SERVICE_URL"`
	Timeout time.Duration `env:"PRODUCT_SERVICE_TIMEOUT" envDefault:"5s"`
}

// Auth describes the external identity provider: the PEM-encoded RSA
// public key its tokens are signed with and the realm role that grants
// elevated access.
type Auth struct {
	PublicKey string `env:"AUTH_PUBLIC_KEY"`
	AdminRole string `env:"AUTH_ADMIN_ROLE" envDefault:"admin"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	var db Database
	var http HTTP
	var catalog Catalog
	var app App
	var auth Auth

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&catalog.BaseURL, "p", "", "Product service base URL")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&catalog)
	if err != nil {
		return nil, fmt.Errorf("error parsing catalog config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}

	config := Config{
		App:      &app,
		Database: &db,
		HTTP:     &http,
		Catalog:  &catalog,
		Auth:     &auth,
	}

	return &config, nil
}
