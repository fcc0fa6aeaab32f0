package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/errors"
	"agentdesk/internal/service"
)

// PostHandler handles the posts CRUD demo endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest represents a create or update post request.
type PostRequest struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content"`
}

// ListPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.GetPost(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body PostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body PostRequest true "Post data"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), id, req.Title, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid post ID",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
