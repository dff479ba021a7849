package store

import (
	"context"

	"inkpost/internal/models"
)

// UserRepository persists accounts. Emails are matched exactly; callers
// normalize them before storing or looking up.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PostRepository persists blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	// TitleTaken reports whether another post (id != exceptID) uses title.
	TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error)
	// UpdateContent overwrites title, subtitle, body and img_url in one statement.
	UpdateContent(ctx context.Context, post *models.Post) error
	// DeleteWithComments removes the post and all of its comments in one
	// transaction.
	DeleteWithComments(ctx context.Context, id uint) (int64, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	Delete(ctx context.Context, id uint) error
}
