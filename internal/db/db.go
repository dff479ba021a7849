package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpost/internal/logger"
	"inkpost/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrEmptyDSN = errors.New("empty database url")

// Open connects to the database named by dsn and creates the schema if it is
// absent. Postgres urls ("postgres://", "postgresql://" or keyword form with
// "host=") use the pgx driver, anything else is a sqlite path.
func Open(dsn string, log *logger.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers anyway; one connection also keeps
		// in-memory databases alive across queries
		sqlDB.SetMaxOpenConns(1)
	}
	log.Info().Str("dialect", dialector.Name()).Msg("database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Info().Msg("database migration completed")

	return conn, nil
}

// Migrate creates the users, blog_posts and comments tables when missing.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrEmptyDSN
	}
	if isPostgres(dsn) {
		return postgres.Open(dsn), nil
	}
	return sqlite.Open(sqliteDSN(dsn)), nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// sqliteDSN accepts "sqlite:///rel.db", "sqlite:////abs.db", "sqlite://rel.db"
// or a bare path, and turns foreign key enforcement on.
func sqliteDSN(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "sqlite:///"):
		dsn = strings.TrimPrefix(dsn, "sqlite:///")
	case strings.HasPrefix(dsn, "sqlite://"):
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}

	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
