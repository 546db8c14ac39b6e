package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/openboard/openboard-api/internal/application"
	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/interface/middleware"
	"github.com/openboard/openboard-api/pkg/helpers"
)

// UserModule wires user routes and the admin tier.
// Public: POST /users (rate limited), GET /users, GET /users/:email.
// Admin:  PATCH /users/admin/:id, GET /users/admin/:email (self only).
//
// The per-route gating is deliberate and uneven: the user list and
// per-email reads stay open while structurally similar post reads under
// /user/:email/posts require a token.
type UserModule struct {
	Handler  *handlers.UserHandler
	Tokens   *helpers.TokenManager
	Accounts *application.AccountService
	RDB      *redis.Client
}

func NewUserModule(h *handlers.UserHandler, tokens *helpers.TokenManager, accounts *application.AccountService, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens, Accounts: accounts, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIP())
	auth := middleware.Auth(m.Tokens)
	admin := middleware.RequireAdmin(m.Accounts)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:email", m.Handler.GetByEmail)

	rg.PATCH("/users/admin/:id", auth, admin, m.Handler.Elevate)
	rg.GET("/users/admin/:email", auth, middleware.RequireSelf("email"), admin, m.Handler.AdminStatus)
}
