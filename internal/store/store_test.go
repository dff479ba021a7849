package store

import (
	"context"
	"testing"

	"inkpost/internal/db"
	"inkpost/internal/logger"
	"inkpost/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func seedUser(t *testing.T, repos *Repositories, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "name", Password: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func seedPost(t *testing.T, repos *Repositories, author *models.User, title string) *models.Post {
	t.Helper()
	p := &models.Post{
		AuthorID: author.ID,
		Title:    title,
		Subtitle: "sub",
		Date:     "March 04, 2024",
		Body:     "<p>body</p>",
		ImgURL:   "http://x/i.png",
	}
	require.NoError(t, repos.Posts.Create(context.Background(), p))
	return p
}

func seedComment(t *testing.T, repos *Repositories, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	c := &models.Comment{AuthorID: author.ID, PostID: post.ID, Text: text}
	require.NoError(t, repos.Comments.Create(context.Background(), c))
	return c
}
