package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"inkpost/internal/middleware"
	"inkpost/internal/services"
	"inkpost/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	content *services.ContentService
}

func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.content.ListPosts(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// Show renders a post with its comments.
func (h *PostHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	h.renderPost(c, http.StatusOK, id, gin.H{})
}

// Comment adds a comment to the post. Anonymous visitors are sent to log in.
func (h *PostHandler) Comment(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		addFlash(c, "You need to login or register to be able to comment")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	text := c.PostForm("comment_text")
	_, err := h.content.CreateComment(c.Request.Context(), user, id, text)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, postPath(id))
	case errors.Is(err, services.ErrValidation):
		_, message, _ := fieldError(err)
		h.renderPost(c, http.StatusBadRequest, id, gin.H{"CommentText": text, "Error": message})
	default:
		handleError(c, err)
	}
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "make-post.html", gin.H{"Form": services.PostInput{}})
}

func (h *PostHandler) Create(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, 0, "Invalid form submission.")
		return
	}

	_, err := h.content.CreatePost(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.formError(c, in, 0, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// ShowEdit renders the post form filled with the stored values.
func (h *PostHandler) ShowEdit(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	post, err := h.content.GetPost(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	in := services.PostInput{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Body:     post.Body,
		ImgURL:   post.ImgURL,
	}
	h.renderForm(c, http.StatusOK, in, id, "")
}

func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	var in services.PostInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderForm(c, http.StatusBadRequest, in, id, "Invalid form submission.")
		return
	}

	post, err := h.content.EditPost(c.Request.Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		h.formError(c, in, id, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "post_id")
	if !ok {
		return
	}

	if err := h.content.DeletePost(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteComment removes a comment and returns to its post.
func (h *PostHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	postID, err := h.content.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(postID))
}

func (h *PostHandler) renderPost(c *gin.Context, code int, id uint, obj gin.H) {
	ctx := c.Request.Context()
	post, err := h.content.GetPost(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	comments, err := h.content.ListComments(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}

	obj["Post"] = post
	obj["Comments"] = comments
	Render(c, code, "post.html", obj)
}

func (h *PostHandler) renderForm(c *gin.Context, code int, in services.PostInput, id uint, message string) {
	obj := gin.H{"Form": in, "IsEdit": id != 0, "PostID": id}
	if message != "" {
		obj["Error"] = message
	}
	Render(c, code, "make-post.html", obj)
}

// formError re-renders the post form for input problems and falls back to
// the generic error page otherwise.
func (h *PostHandler) formError(c *gin.Context, in services.PostInput, id uint, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		field, message, _ := fieldError(err)
		obj := gin.H{"Form": in, "IsEdit": id != 0, "PostID": id, "Field": field, "Error": message}
		Render(c, http.StatusBadRequest, "make-post.html", obj)
	case errors.Is(err, services.ErrDuplicateTitle):
		h.renderForm(c, http.StatusConflict, in, id, "A post with this title already exists.")
	default:
		handleError(c, err)
	}
}

// pathID parses an id path parameter. Malformed ids answer 404.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
