// Package config loads the blog's settings from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the root settings container, populated from environment
// variables through the `env` and `envPrefix` tags.
type Config struct {
	App     App     `envPrefix:"APP_"`
	Server  Server  `envPrefix:"SERVER_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Mail    Mail    `envPrefix:"MAIL_"`
}

type App struct {
	// SecretKey signs the session cookie.
	// Env: APP_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// AdminIDs lists the user ids allowed to create, edit and delete posts
	// and to delete comments, e.g. "1,2".
	// Env: APP_ADMIN_IDS
	AdminIDs []uint `env:"ADMIN_IDS" envSeparator:","`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// TemplatesDir holds layouts/, includes/ and views/.
	// Env: APP_TEMPLATES_DIR
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`

	// StaticDir is served under /static.
	// Env: APP_STATIC_DIR
	StaticDir string `env:"STATIC_DIR" envDefault:"./web/static"`

	// Env: APP_SESSION_NAME
	SessionName string `env:"SESSION_NAME" envDefault:"blog_session"`
}

type Server struct {
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS" envDefault:":8080"`

	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Storage struct {
	// DatabaseURL is either a postgres url/keyword DSN or a sqlite path,
	// optionally prefixed with "sqlite://".
	// Env: STORAGE_DATABASE_URL
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://blog.db"`
}

type Mail struct {
	// Env: MAIL_HOST
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	// Env: MAIL_PORT
	Port int `env:"PORT" envDefault:"587"`
	// Env: MAIL_USERNAME
	Username string `env:"USERNAME"`
	// Env: MAIL_PASSWORD
	Password string `env:"PASSWORD"`
	// From defaults to Username when empty.
	// Env: MAIL_FROM
	From string `env:"FROM"`
	// Recipient receives every contact form message.
	// Env: MAIL_RECIPIENT
	Recipient string `env:"RECIPIENT"`
	// Timeout bounds dialing and the whole SMTP exchange.
	// Env: MAIL_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether enough settings exist to talk to the relay.
func (m Mail) Enabled() bool {
	return m.Host != "" && m.Port > 0 && m.Username != "" && m.Password != "" && m.Recipient != ""
}

// Load reads the optional .env file, parses the environment and validates
// the result.
func Load() (*Config, error) {
	// a missing .env is fine, variables may come from the system
	_ = godotenv.Load()

	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
