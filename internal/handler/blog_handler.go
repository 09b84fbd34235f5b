package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"folio/internal/service"
)

// BlogHandler handles blog content endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreatePostRequest represents a create request. Slug is optional and
// derived from the title when absent.
type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,min=5,max=200"`
	Slug      string   `json:"slug" validate:"omitempty,max=200"`
	Excerpt   string   `json:"excerpt" validate:"omitempty,max=500"`
	Content   string   `json:"content" validate:"required,min=100"`
	Category  string   `json:"category" validate:"required,oneof=frontend backend devops mobile tutorial opinion news"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,min=2,max=30"`
	Published bool     `json:"published"`
	Featured  bool     `json:"featured"`
}

// UpdatePostRequest represents a partial update; absent fields are left alone.
type UpdatePostRequest struct {
	Title     *string   `json:"title" validate:"omitempty,min=5,max=200"`
	Excerpt   *string   `json:"excerpt" validate:"omitempty,max=500"`
	Content   *string   `json:"content" validate:"omitempty,min=100"`
	Category  *string   `json:"category" validate:"omitempty,oneof=frontend backend devops mobile tutorial opinion news"`
	Tags      *[]string `json:"tags" validate:"omitempty,max=10,dive,min=2,max=30"`
	Published *bool     `json:"published"`
	Featured  *bool     `json:"featured"`
}

// List godoc
// @Summary List published posts
// @Tags blog
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param category query string false "Category filter"
// @Param tag query string false "Tag filter"
// @Param search query string false "Substring search over title, content and excerpt"
// @Success 200 {object} Response
// @Router /blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	opts := service.ListOptions{
		Page:     queryInt(c, "page", 0),
		Limit:    queryInt(c, "limit", 0),
		Category: c.QueryParam("category"),
		Tag:      c.QueryParam("tag"),
		Search:   c.QueryParam("search"),
	}

	posts, pagination, err := h.blogService.ListPosts(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, posts, len(posts), pagination)
}

// ListByTag godoc
// @Summary List published posts carrying a tag
// @Tags blog
// @Produce json
// @Param tag path string true "Tag"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Router /blog/tag/{tag} [get]
func (h *BlogHandler) ListByTag(c echo.Context) error {
	opts := service.ListOptions{
		Page:  queryInt(c, "page", 0),
		Limit: queryInt(c, "limit", 0),
		Tag:   c.Param("tag"),
	}

	posts, pagination, err := h.blogService.ListPosts(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, posts, len(posts), pagination)
}

// ListByCategory godoc
// @Summary List published posts in a category
// @Tags blog
// @Produce json
// @Param category path string true "Category"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Router /blog/category/{category} [get]
func (h *BlogHandler) ListByCategory(c echo.Context) error {
	opts := service.ListOptions{
		Page:     queryInt(c, "page", 0),
		Limit:    queryInt(c, "limit", 0),
		Category: c.Param("category"),
	}

	posts, pagination, err := h.blogService.ListPosts(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, posts, len(posts), pagination)
}

// ListAll godoc
// @Summary List every post including drafts
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /blog/admin [get]
func (h *BlogHandler) ListAll(c echo.Context) error {
	opts := service.ListOptions{
		Page:          queryInt(c, "page", 0),
		Limit:         queryInt(c, "limit", 0),
		Category:      c.QueryParam("category"),
		Search:        c.QueryParam("search"),
		IncludeDrafts: true,
	}

	posts, pagination, err := h.blogService.ListPosts(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, posts, len(posts), pagination)
}

// GetBySlug godoc
// @Summary Get a published post by slug
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetBySlug(c echo.Context) error {
	post, err := h.blogService.GetPostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 409 {object} Response
// @Router /blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.blogService.CreatePost(c.Request().Context(), claims.UserID, service.CreatePostInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
		Published: req.Published,
		Featured:  req.Featured,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, post)
}

// Update godoc
// @Summary Update a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /blog/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.blogService.UpdatePost(c.Request().Context(), claims.UserID, claims.Role, id, service.UpdatePostInput{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
		Published: req.Published,
		Featured:  req.Featured,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /blog/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	if err := h.blogService.DeletePost(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{})
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
