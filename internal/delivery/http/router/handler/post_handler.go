package handler

import (
	"log/slog"
	"net/http"

	"postboard/internal/delivery/http/response"
	"postboard/internal/delivery/http/view"
	"postboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type postForm struct {
	Title   string `form:"title" json:"title" validate:"max=255"`
	Content string `form:"content" json:"content"`
}

// PostHandler serves post creation, likes, editing and deletion.
type PostHandler struct {
	posts  usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(posts usecase.PostUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: logger,
	}
}

// Create publishes a post with an optional image.
func (h *PostHandler) Create(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	var form postForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	image, closeImage, err := openUpload(c, "image")
	defer closeImage()
	if err != nil {
		return err
	}

	if _, err := h.posts.CreatePost(c.Request().Context(), identity.UserID, &usecase.CreatePostInput{
		Title:   form.Title,
		Content: form.Content,
		Image:   image,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, profilePath)
}

// Like toggles the caller's like.
func (h *PostHandler) Like(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if _, err := h.posts.ToggleLike(c.Request().Context(), identity.UserID, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, profilePath)
}

// EditPage renders the edit form for the post's owner.
func (h *PostHandler) EditPage(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	post, err := h.posts.GetPostForEdit(c.Request().Context(), identity.UserID, postID)
	if err != nil {
		return errors.WithStack(err)
	}

	page := view.EditPage{Post: view.NewPost(post, identity.UserID)}

	return response.Page(c, http.StatusOK, view.PageEdit, page, page.Post)
}

// Edit applies new title and content, and a new image when one is sent.
// Ownership is checked before the body is read, so non-owners get 403 whatever they send.
func (h *PostHandler) Edit(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if _, err := h.posts.GetPostForEdit(c.Request().Context(), identity.UserID, postID); err != nil {
		return errors.WithStack(err)
	}

	var form postForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	image, closeImage, err := openUpload(c, "image")
	defer closeImage()
	if err != nil {
		return err
	}

	if _, err := h.posts.EditPost(c.Request().Context(), identity.UserID, postID, &usecase.EditPostInput{
		Title:   form.Title,
		Content: form.Content,
		Image:   image,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, profilePath)
}

// Delete removes the post.
func (h *PostHandler) Delete(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return redirectToLogin(c)
	}

	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if err := h.posts.DeletePost(c.Request().Context(), identity.UserID, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, profilePath)
}
