package store

import (
	"context"
	"fmt"

	"inkpost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts post without touching its Author association. A taken
// title yields [ErrDuplicate], a missing author [ErrDanglingReference].
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return fmt.Errorf("creating post: %w", classify(err))
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, classify(err)
	}
	return &post, nil
}

// List returns every post in insertion order.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, classify(err)
	}
	return posts, nil
}

func (r *postRepository) TitleTaken(ctx context.Context, title string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("title = ?", title)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// UpdateContent writes the editable columns only; author_id and date keep
// their creation values.
func (r *postRepository) UpdateContent(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":    post.Title,
			"subtitle": post.Subtitle,
			"body":     post.Body,
			"img_url":  post.ImgURL,
		})
	if res.Error != nil {
		return fmt.Errorf("updating post %d: %w", post.ID, classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithComments deletes the comments of post id and then the post
// inside one transaction and returns how many comments went with it. If the
// post does not exist nothing is deleted and [ErrNotFound] is returned.
func (r *postRepository) DeleteWithComments(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return fmt.Errorf("deleting comments of post %d: %w", id, classify(res.Error))
		}
		removed = res.RowsAffected

		res = tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("deleting post %d: %w", id, classify(res.Error))
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
