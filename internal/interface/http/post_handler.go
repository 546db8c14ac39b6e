package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/internal/application"
	"github.com/openboard/openboard-api/internal/domain/repository"
	"github.com/openboard/openboard-api/pkg/helpers"
	"github.com/openboard/openboard-api/pkg/response"
	"github.com/openboard/openboard-api/pkg/validation"
)

type PostHandler struct {
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(posts *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

// Create handles POST /post. The body is an opaque document; creation
// only requires an authenticated caller.
func (h *PostHandler) Create(c *gin.Context) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Posts.Create(c.Request.Context(), doc)
	if err != nil {
		helpers.LogError(h.Logger, "post create failed", err, nil)
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"inserted_id": id}, "post created")
}

// List handles GET /post.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Posts.List(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "post list failed", err, nil)
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, posts, "posts")
}

// Get handles GET /post/:id.
func (h *PostHandler) Get(c *gin.Context) {
	doc, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, "post not found", nil)
		return
	}
	if err != nil {
		helpers.LogError(h.Logger, "post lookup failed", err, logrus.Fields{"id": c.Param("id")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, doc, "post")
}

// Patch handles PATCH /post/:id. Any partial document is merged in,
// vote counters and content edits alike. No ownership check beyond
// authentication: any authenticated identity may edit any post.
func (h *PostHandler) Patch(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	matched, err := h.Posts.Patch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		helpers.LogError(h.Logger, "post patch failed", err, logrus.Fields{"id": c.Param("id")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if matched == 0 {
		response.Fail(c, http.StatusNotFound, "post not found", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"matched_count": matched, "modified_count": matched}, "post updated")
}

// Delete handles DELETE /post/:id.
func (h *PostHandler) Delete(c *gin.Context) {
	deleted, err := h.Posts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.LogError(h.Logger, "post delete failed", err, logrus.Fields{"id": c.Param("id")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if deleted == 0 {
		response.Fail(c, http.StatusNotFound, "post not found", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted_count": deleted}, "post deleted")
}

// ListByAuthor handles GET /user/:email/posts. Requires authentication
// but not ownership: any authenticated caller may list any author.
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	posts, err := h.Posts.ListByAuthor(c.Request.Context(), c.Param("email"))
	if err != nil {
		helpers.LogError(h.Logger, "author post list failed", err, logrus.Fields{"email": c.Param("email")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, posts, "posts")
}
