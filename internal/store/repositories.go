package store

import (
	"inkpost/internal/logger"

	"gorm.io/gorm"
)

// Repositories bundles the gorm-backed repositories sharing one connection.
type Repositories struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
}

func NewRepositories(db *gorm.DB, log *logger.Logger) *Repositories {
	log.Debug().Msg("creating repositories")
	return &Repositories{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
	}
}
