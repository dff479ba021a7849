package services

import (
	"context"
	"testing"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, time.March, 4, 15, 0, 0, 0, time.UTC) }

func validInput(title string) PostInput {
	return PostInput{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "<p>Hello</p>",
		ImgURL:   "https://example.com/cover.png",
	}
}

func seedUser(t *testing.T, repos *store.Repositories, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "name", Password: "hash"}
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func newContent(repos *store.Repositories, admins ...uint) *ContentService {
	return NewContentService(repos.Posts, repos.Comments, NewGate(admins), WithClock(fixedNow))
}

func TestContentService_AdminLifecycle(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	a := seedUser(t, repos, "a@x.com")

	// not privileged yet
	content := newContent(repos)
	_, err := content.CreatePost(ctx, a, validInput("Hello"))
	require.ErrorIs(t, err, ErrForbidden)
	posts, err := content.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	content = newContent(repos, a.ID)
	post, err := content.CreatePost(ctx, a, validInput("Hello"))
	require.NoError(t, err)
	assert.Equal(t, "March 04, 2024", post.Date)
	assert.Equal(t, a.ID, post.AuthorID)

	_, err = content.CreatePost(ctx, a, validInput("Hello"))
	require.ErrorIs(t, err, ErrDuplicateTitle)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, content.DeletePost(ctx, a, post.ID))
	_, err = content.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_DateUsesCurrentClock(t *testing.T) {
	repos := newTestRepos(t)
	a := seedUser(t, repos, "a@x.com")
	content := NewContentService(repos.Posts, repos.Comments, NewGate([]uint{a.ID}))

	before := time.Now().Format(models.DateLayout)
	post, err := content.CreatePost(context.Background(), a, validInput("Today"))
	require.NoError(t, err)
	after := time.Now().Format(models.DateLayout)
	assert.Contains(t, []string{before, after}, post.Date)
}

func TestContentService_CreatePostValidation(t *testing.T) {
	repos := newTestRepos(t)
	a := seedUser(t, repos, "a@x.com")
	content := newContent(repos, a.ID)

	tests := []struct {
		name  string
		edit  func(*PostInput)
		field string
	}{
		{name: "empty title", edit: func(in *PostInput) { in.Title = "  " }, field: "title"},
		{name: "empty subtitle", edit: func(in *PostInput) { in.Subtitle = "" }, field: "subtitle"},
		{name: "empty body", edit: func(in *PostInput) { in.Body = "" }, field: "body"},
		{name: "bad url", edit: func(in *PostInput) { in.ImgURL = "not a url" }, field: "img_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("T")
			tt.edit(&in)
			_, err := content.CreatePost(context.Background(), a, in)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestContentService_EditPost(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	a := seedUser(t, repos, "a@x.com")
	b := seedUser(t, repos, "b@x.com")
	content := newContent(repos, a.ID, b.ID)

	first, err := content.CreatePost(ctx, a, validInput("First"))
	require.NoError(t, err)
	_, err = content.CreatePost(ctx, a, validInput("Second"))
	require.NoError(t, err)

	in := validInput("First")
	in.Subtitle = "changed"
	edited, err := content.EditPost(ctx, b, first.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "changed", edited.Subtitle)

	stored, err := content.GetPost(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Subtitle)
	assert.Equal(t, a.ID, stored.AuthorID)
	assert.Equal(t, "March 04, 2024", stored.Date)

	_, err = content.EditPost(ctx, b, first.ID, validInput("Second"))
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	_, err = content.EditPost(ctx, b, 999, validInput("Third"))
	assert.ErrorIs(t, err, ErrNotFound)

	outsider := seedUser(t, repos, "c@x.com")
	_, err = content.EditPost(ctx, outsider, first.ID, validInput("Hijack"))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = content.EditPost(ctx, nil, 999, validInput("Hijack"))
	assert.ErrorIs(t, err, ErrForbidden, "gate is checked before lookup")
}

func TestContentService_DeletePostCascades(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	a := seedUser(t, repos, "a@x.com")
	reader := seedUser(t, repos, "r@x.com")
	content := newContent(repos, a.ID)

	keep, err := content.CreatePost(ctx, a, validInput("Keep"))
	require.NoError(t, err)
	drop, err := content.CreatePost(ctx, a, validInput("Drop"))
	require.NoError(t, err)

	for _, p := range []*models.Post{keep, drop, drop} {
		_, err := content.CreateComment(ctx, reader, p.ID, "nice")
		require.NoError(t, err)
	}

	assert.ErrorIs(t, content.DeletePost(ctx, reader, drop.ID), ErrForbidden)
	require.NoError(t, content.DeletePost(ctx, a, drop.ID))

	dropped, err := content.ListComments(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	kept, err := content.ListComments(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.ErrorIs(t, content.DeletePost(ctx, a, drop.ID), ErrNotFound)
}

func TestContentService_Comments(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	a := seedUser(t, repos, "a@x.com")
	reader := seedUser(t, repos, "r@x.com")
	content := newContent(repos, a.ID)

	post, err := content.CreatePost(ctx, a, validInput("Post"))
	require.NoError(t, err)

	_, err = content.CreateComment(ctx, nil, post.ID, "hi")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = content.CreateComment(ctx, reader, post.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = content.CreateComment(ctx, reader, 999, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := content.CreateComment(ctx, reader, post.ID, "first")
	require.NoError(t, err)
	_, err = content.CreateComment(ctx, a, post.ID, "second")
	require.NoError(t, err)

	comments, err := content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "r@x.com", comments[0].Author.Email)
	assert.Equal(t, "second", comments[1].Text)

	_, err = content.DeleteComment(ctx, reader, first.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	postID, err := content.DeleteComment(ctx, a, first.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, postID)

	_, err = content.DeleteComment(ctx, a, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err = content.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestContentService_ListPostsInInsertionOrder(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	a := seedUser(t, repos, "a@x.com")
	content := newContent(repos, a.ID)

	for _, title := range []string{"one", "two", "three"} {
		_, err := content.CreatePost(ctx, a, validInput(title))
		require.NoError(t, err)
	}

	posts, err := content.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "three", posts[2].Title)
	assert.Equal(t, "a@x.com", posts[0].Author.Email)
}
