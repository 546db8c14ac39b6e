package router

import (
	"github.com/openboard/openboard-api/internal/application"
	"github.com/openboard/openboard-api/internal/container"
	"github.com/openboard/openboard-api/internal/infrastructure/postgres"
	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/router/modules"
)

// Collection table names, created by the startup migrations.
const (
	usersTable    = "users"
	postsTable    = "posts"
	commentsTable = "comments"
)

// InitModules builds every feature module from the container singletons
// and adds them to the registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	tokens := container.GetTokens()
	rdb := container.GetRedis()

	accounts := application.NewAccountService(postgres.NewCollection(pool, usersTable), logger)
	posts := application.NewPostService(postgres.NewCollection(pool, postsTable), logger)
	comments := application.NewCommentService(postgres.NewCollection(pool, commentsTable), logger)

	r.Add(modules.NewTokenModule(handlers.NewTokenHandler(tokens, logger), rdb))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(accounts, logger), tokens, accounts, rdb))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(posts, logger), tokens))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(comments, logger), tokens))
}
