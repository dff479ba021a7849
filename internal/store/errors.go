package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors returned by repository methods. Callers match them with
// [errors.Is].
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a unique index
	// (users.email, blog_posts.title).
	ErrDuplicate = errors.New("duplicate key")

	// ErrDanglingReference is returned when a write references a user or
	// post that does not exist.
	ErrDanglingReference = errors.New("referenced record does not exist")
)

// classify maps driver and gorm errors onto the sentinels above. gorm
// translates most of them itself (TranslateError); raw *pgconn.PgError values
// still show up from statements gorm does not inspect.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrDanglingReference
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicate
		case pgerrcode.ForeignKeyViolation:
			return ErrDanglingReference
		}
	}

	return err
}
