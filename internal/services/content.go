package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/store"
)

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	Body     string `form:"body" validate:"required"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
}

func (in PostInput) trimmed() PostInput {
	return PostInput{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		Body:     strings.TrimSpace(in.Body),
		ImgURL:   strings.TrimSpace(in.ImgURL),
	}
}

// ContentService owns posts and comments. Every mutation except commenting
// is checked against the gate before anything is read or written.
type ContentService struct {
	posts    store.PostRepository
	comments store.CommentRepository
	gate     *Gate
	now      func() time.Time
}

type ContentOption func(*ContentService)

// WithClock sets the time source used to date new posts.
func WithClock(now func() time.Time) ContentOption {
	return func(s *ContentService) {
		s.now = now
	}
}

func NewContentService(posts store.PostRepository, comments store.CommentRepository, gate *Gate, opts ...ContentOption) *ContentService {
	s := &ContentService{
		posts:    posts,
		comments: comments,
		gate:     gate,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ContentService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

func (s *ContentService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return post, nil
}

func (s *ContentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// CreatePost stores a new post authored by actor and dated today.
func (s *ContentService) CreatePost(ctx context.Context, actor *models.User, in PostInput) (*models.Post, error) {
	if !s.gate.IsAuthorized(actor) {
		return nil, ErrForbidden
	}
	in = in.trimmed()
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	taken, err := s.posts.TitleTaken(ctx, in.Title, 0)
	if err != nil {
		return nil, fmt.Errorf("checking title: %w", err)
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	post := &models.Post{
		AuthorID: actor.ID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(models.DateLayout),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, ErrDuplicateTitle
		case errors.Is(err, store.ErrDanglingReference):
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("creating post: %w", err)
	}
	post.Author = *actor

	logger.FromContext(ctx).Info().Uint("post_id", post.ID).Uint("author_id", actor.ID).Msg("post created")
	return post, nil
}

// EditPost overwrites the content fields of post id. Author and date stay.
func (s *ContentService) EditPost(ctx context.Context, actor *models.User, id uint, in PostInput) (*models.Post, error) {
	if !s.gate.IsAuthorized(actor) {
		return nil, ErrForbidden
	}
	in = in.trimmed()
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	taken, err := s.posts.TitleTaken(ctx, in.Title, id)
	if err != nil {
		return nil, fmt.Errorf("checking title: %w", err)
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImgURL = in.ImgURL
	if err := s.posts.UpdateContent(ctx, post); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, storeErr(err)
	}

	logger.FromContext(ctx).Info().Uint("post_id", post.ID).Uint("editor_id", actor.ID).Msg("post edited")
	return post, nil
}

// DeletePost removes the post and all its comments atomically.
func (s *ContentService) DeletePost(ctx context.Context, actor *models.User, id uint) error {
	if !s.gate.IsAuthorized(actor) {
		return ErrForbidden
	}

	removed, err := s.posts.DeleteWithComments(ctx, id)
	if err != nil {
		return storeErr(err)
	}

	logger.FromContext(ctx).Info().
		Uint("post_id", id).
		Int64("comments_removed", removed).
		Msg("post deleted")
	return nil
}

// CreateComment attaches text to post postID on behalf of author.
func (s *ContentService) CreateComment(ctx context.Context, author *models.User, postID uint, text string) (*models.Comment, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text", fieldMessages["required"])
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, storeErr(err)
	}

	comment := &models.Comment{AuthorID: author.ID, PostID: postID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, store.ErrDanglingReference) {
			// post removed between the lookup and the insert
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	comment.Author = *author
	return comment, nil
}

// DeleteComment removes one comment and returns the id of its post.
func (s *ContentService) DeleteComment(ctx context.Context, actor *models.User, id uint) (uint, error) {
	if !s.gate.IsAuthorized(actor) {
		return 0, ErrForbidden
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return 0, storeErr(err)
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return 0, storeErr(err)
	}

	logger.FromContext(ctx).Info().Uint("comment_id", id).Uint("post_id", comment.PostID).Msg("comment deleted")
	return comment.PostID, nil
}

func storeErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
