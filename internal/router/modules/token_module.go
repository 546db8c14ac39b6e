package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/interface/middleware"
)

// TokenModule exposes credential issuance.
// Public: POST /jwt (rate limited per IP).
type TokenModule struct {
	Handler *handlers.TokenHandler
	RDB     *redis.Client
}

func NewTokenModule(h *handlers.TokenHandler, rdb *redis.Client) *TokenModule {
	return &TokenModule{Handler: h, RDB: rdb}
}

func (m *TokenModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIP())
	rg.POST("/jwt", limiter, m.Handler.Issue)
}
