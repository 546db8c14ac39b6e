package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/internal/application"
	"github.com/openboard/openboard-api/pkg/helpers"
	"github.com/openboard/openboard-api/pkg/response"
	"github.com/openboard/openboard-api/pkg/validation"
)

type CommentHandler struct {
	Comments *application.CommentService
	Logger   *logrus.Logger
}

func NewCommentHandler(comments *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

// Create handles POST /comment. The document is opaque; postId inside
// it is a free-text reference that is never checked against posts.
func (h *CommentHandler) Create(c *gin.Context) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := h.Comments.Create(c.Request.Context(), doc)
	if err != nil {
		helpers.LogError(h.Logger, "comment create failed", err, nil)
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"inserted_id": id}, "comment created")
}

// ListByPost handles GET /post/:id/comments. Zero matches is an empty
// list, not an error.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.Comments.ListByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.LogError(h.Logger, "comment list failed", err, logrus.Fields{"postId": c.Param("id")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, comments, "comments")
}
