package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/interface/middleware"
	"github.com/openboard/openboard-api/pkg/helpers"
)

// CommentModule wires comment routes.
// Public: GET /post/:id/comments. Authenticated: POST /comment.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Tokens  *helpers.TokenManager
}

func NewCommentModule(h *handlers.CommentHandler, tokens *helpers.TokenManager) *CommentModule {
	return &CommentModule{Handler: h, Tokens: tokens}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.POST("/comment", middleware.Auth(m.Tokens), m.Handler.Create)
	rg.GET("/post/:id/comments", m.Handler.ListByPost)
}
