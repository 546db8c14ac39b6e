package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/interface/middleware"
	"github.com/openboard/openboard-api/pkg/helpers"
)

// PostModule wires post CRUD.
// Public: GET /post, GET /post/:id.
// Authenticated: POST /post, PATCH /post/:id, DELETE /post/:id,
// GET /user/:email/posts.
type PostModule struct {
	Handler *handlers.PostHandler
	Tokens  *helpers.TokenManager
}

func NewPostModule(h *handlers.PostHandler, tokens *helpers.TokenManager) *PostModule {
	return &PostModule{Handler: h, Tokens: tokens}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := middleware.Auth(m.Tokens)

	rg.POST("/post", auth, m.Handler.Create)
	rg.GET("/post", m.Handler.List)
	rg.GET("/post/:id", m.Handler.Get)
	rg.PATCH("/post/:id", auth, m.Handler.Patch)
	rg.DELETE("/post/:id", auth, m.Handler.Delete)

	rg.GET("/user/:email/posts", auth, m.Handler.ListByAuthor)
}
