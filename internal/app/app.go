// Package app assembles the blog's dependencies once at startup and hands
// them to the HTTP layer explicitly.
package app

import (
	"fmt"

	"inkpost/internal/config"
	"inkpost/internal/db"
	"inkpost/internal/logger"
	"inkpost/internal/services"
	"inkpost/internal/store"

	"gorm.io/gorm"
)

// App is the application context. Nothing in the blog reads globals; every
// handler and middleware gets what it needs from here.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *gorm.DB
	Repos  *store.Repositories

	Auth    *services.AuthService
	Gate    *services.Gate
	Content *services.ContentService
	Mail    *services.MailService
}

type Option func(*options)

type options struct {
	auth    []services.AuthOption
	content []services.ContentOption
}

// WithAuthOptions forwards options to the auth service.
func WithAuthOptions(opts ...services.AuthOption) Option {
	return func(o *options) { o.auth = append(o.auth, opts...) }
}

// WithContentOptions forwards options to the content service.
func WithContentOptions(opts ...services.ContentOption) Option {
	return func(o *options) { o.content = append(o.content, opts...) }
}

// New opens the database named by cfg, creates the schema and wires the
// services.
func New(cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	conn, err := db.Open(cfg.Storage.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewWithDB(cfg, log, conn, opts...), nil
}

// NewWithDB wires the services over an already opened connection.
func NewWithDB(cfg *config.Config, log *logger.Logger, conn *gorm.DB, opts ...Option) *App {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	repos := store.NewRepositories(conn, log)
	gate := services.NewGate(cfg.App.AdminIDs)
	if len(gate.IDs()) == 0 {
		log.Warn().Msg("APP_ADMIN_IDS is empty, nobody can manage posts")
	} else {
		log.Info().Interface("admin_ids", gate.IDs()).Msg("admin gate configured")
	}

	return &App{
		Config:  cfg,
		Log:     log,
		DB:      conn,
		Repos:   repos,
		Auth:    services.NewAuthService(repos.Users, o.auth...),
		Gate:    gate,
		Content: services.NewContentService(repos.Posts, repos.Comments, gate, o.content...),
		Mail:    services.NewMailService(cfg.Mail, log),
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
