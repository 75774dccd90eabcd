// Blog HTTP handlers.
//
// Public reads return every translation of each post; the client picks the
// language. Mutations live under /admin and require an admin identity, which
// the service layer enforces.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phytolife/go-phyto-backend/internal/domain"
	"github.com/phytolife/go-phyto-backend/internal/i18n"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

// BlogPostRequest is the JSON payload for creating a post. Localized fields
// must carry all three translations.
type BlogPostRequest struct {
	Title   domain.LocalizedText `json:"title" binding:"required"`
	Content domain.LocalizedText `json:"content" binding:"required"`
	Excerpt domain.LocalizedText `json:"excerpt" binding:"required"`
	Image   string               `json:"image"`
	Author  string               `json:"author" binding:"required"`
}

// BlogPostPatch is the JSON payload for a partial update; omitted fields
// stay untouched.
type BlogPostPatch struct {
	Title   *domain.LocalizedText `json:"title"`
	Content *domain.LocalizedText `json:"content"`
	Excerpt *domain.LocalizedText `json:"excerpt"`
	Image   *string               `json:"image"`
	Author  *string               `json:"author"`
}

// ListBlogPosts returns all posts, newest first.
func (h *Handlers) ListBlogPosts(c *gin.Context) {
	posts, err := h.catalog.ListBlogPosts(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"posts": posts})
}

// GetBlogPost returns one post by ID.
func (h *Handlers) GetBlogPost(c *gin.Context) {
	post, err := h.catalog.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, post)
}

// CreateBlogPost inserts a post; admin only.
func (h *Handlers) CreateBlogPost(c *gin.Context) {
	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	post, err := h.catalog.CreateBlogPost(c.Request.Context(), identity(c), &domain.BlogPost{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Image:   req.Image,
		Author:  req.Author,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, post)
}

// UpdateBlogPost applies a partial edit; admin only.
func (h *Handlers) UpdateBlogPost(c *gin.Context) {
	var req BlogPostPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		failT(c, http.StatusBadRequest, ErrCodeBadRequest, i18n.MsgBadRequest)
		return
	}

	post, err := h.catalog.UpdateBlogPost(c.Request.Context(), identity(c), c.Param("id"), services.BlogPostUpdate{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Image:   req.Image,
		Author:  req.Author,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, post)
}

// DeleteBlogPost removes a post; admin only.
func (h *Handlers) DeleteBlogPost(c *gin.Context) {
	if err := h.catalog.DeleteBlogPost(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
