package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/openboard-api/internal/application"
	"github.com/openboard/openboard-api/internal/domain/entity"
	"github.com/openboard/openboard-api/internal/infrastructure/memory"
	handlers "github.com/openboard/openboard-api/internal/interface/http"
	"github.com/openboard/openboard-api/internal/interface/middleware"
	"github.com/openboard/openboard-api/internal/router"
	"github.com/openboard/openboard-api/internal/router/modules"
	"github.com/openboard/openboard-api/pkg/helpers"
	"github.com/openboard/openboard-api/pkg/validation"
)

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type testApp struct {
	engine   *gin.Engine
	tokens   *helpers.TokenManager
	users    *memory.Collection
	posts    *memory.Collection
	comments *memory.Collection
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := helpers.NewTokenManager("test-secret", 2*time.Hour)
	users := memory.NewCollection()
	posts := memory.NewCollection()
	comments := memory.NewCollection()

	accounts := application.NewAccountService(users, logger)
	postSvc := application.NewPostService(posts, logger)
	commentSvc := application.NewCommentService(comments, logger)

	r := gin.New()
	r.Use(middleware.RequestID())

	reg := router.NewRegistry(r)
	reg.Add(modules.NewTokenModule(handlers.NewTokenHandler(tokens, logger), nil))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(accounts, logger), tokens, accounts, nil))
	reg.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), tokens))
	reg.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), tokens))
	reg.RegisterAll()

	return &testApp{engine: r, tokens: tokens, users: users, posts: posts, comments: comments}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.engine.ServeHTTP(rr, req)

	// only envelope responses decode; unmatched routes get gin's plain
	// text 404 body
	var env envelope
	if rr.Body.Len() > 0 && strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func (a *testApp) token(t *testing.T, email string) string {
	t.Helper()
	tok, _, err := a.tokens.Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return tok
}

// register creates a user directly through the endpoint and returns the
// assigned id.
func (a *testApp) register(t *testing.T, doc map[string]any) string {
	t.Helper()
	rr, env := a.do(t, http.MethodPost, "/users", "", doc)
	require.Equal(t, http.StatusCreated, rr.Code)
	var data struct {
		InsertedID string `json:"inserted_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.InsertedID)
	return data.InsertedID
}

func TestIssueToken(t *testing.T) {
	app := newTestApp(t)

	rr, env := app.do(t, http.MethodPost, "/jwt", "", map[string]any{"email": "alice@b.io", "name": "Alice"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, env.RequestID, "every envelope carries a request id")

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	claims, err := app.tokens.Verify(data.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@b.io", claims["email"])
	assert.Equal(t, "Alice", claims["name"])
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	app := newTestApp(t)

	rr, _ := app.do(t, http.MethodPost, "/jwt", "", map[string]any{"name": "NoEmail"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = app.do(t, http.MethodPost, "/jwt", "", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterTwiceReturnsNullInsertedID(t *testing.T) {
	app := newTestApp(t)

	id := app.register(t, map[string]any{"email": "a@b.io", "name": "A"})
	assert.NotEmpty(t, id)

	rr, env := app.do(t, http.MethodPost, "/users", "", map[string]any{"email": "a@b.io", "name": "A again"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "user already exists", env.Message)
	assert.JSONEq(t, `{"inserted_id": null}`, string(env.Data))

	all, err := app.users.FindMany(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserLookup(t *testing.T) {
	app := newTestApp(t)
	app.register(t, map[string]any{"email": "a@b.io", "name": "A"})

	rr, env := app.do(t, http.MethodGet, "/users/a@b.io", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), "a@b.io")

	// a miss is a distinct 404, not an empty success
	rr, _ = app.do(t, http.MethodGet, "/users/nobody@b.io", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, env = app.do(t, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestUnauthenticatedMutationsRejected(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/post", map[string]any{"title": "x"}},
		{http.MethodPatch, "/post/some-id", map[string]any{"upVote": 1}},
		{http.MethodDelete, "/post/some-id", nil},
		{http.MethodPost, "/comment", map[string]any{"postId": "p"}},
		{http.MethodPatch, "/users/admin/some-id", nil},
		{http.MethodGet, "/user/a@b.io/posts", nil},
	}
	for _, tc := range cases {
		rr, _ := app.do(t, tc.method, tc.path, "", tc.body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
	}

	// no mutation happened anywhere
	posts, err := app.posts.FindMany(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, posts)
	comments, err := app.comments.FindMany(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestElevationRequiresAdmin(t *testing.T) {
	app := newTestApp(t)

	memberID := app.register(t, map[string]any{"email": "member@b.io"})
	app.register(t, map[string]any{"email": "boss@b.io", "role": entity.RoleAdmin})

	memberTok := app.token(t, "member@b.io")
	bossTok := app.token(t, "boss@b.io")

	// a valid member token is not enough
	rr, _ := app.do(t, http.MethodPatch, "/users/admin/"+memberID, memberTok, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	doc, err := app.users.FindByID(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, doc.GetString(entity.FieldRole))

	// the admin succeeds
	rr, env := app.do(t, http.MethodPatch, "/users/admin/"+memberID, bossTok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matched_count": 1, "modified_count": 1}`, string(env.Data))

	doc, err = app.users.FindByID(context.Background(), memberID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, doc.GetString(entity.FieldRole))

	// unknown target id
	rr, _ = app.do(t, http.MethodPatch, "/users/admin/no-such-id", bossTok, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminStatusSelfCheck(t *testing.T) {
	app := newTestApp(t)

	app.register(t, map[string]any{"email": "boss@b.io", "role": entity.RoleAdmin})
	app.register(t, map[string]any{"email": "member@b.io"})

	bossTok := app.token(t, "boss@b.io")
	memberTok := app.token(t, "member@b.io")

	// querying someone else's status is forbidden before roles are consulted
	rr, _ := app.do(t, http.MethodGet, "/users/admin/member@b.io", bossTok, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// a member is refused their own admin route
	rr, _ = app.do(t, http.MethodGet, "/users/admin/member@b.io", memberTok, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, env := app.do(t, http.MethodGet, "/users/admin/boss@b.io", bossTok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"admin": true}`, string(env.Data))
}

func TestPostLifecycle(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t, "author@b.io")

	rr, env := app.do(t, http.MethodPost, "/post", tok, map[string]any{
		"title": "hello", "authorEmail": "author@b.io", "upVote": 0, "downVote": 0,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		InsertedID string `json:"inserted_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// public read
	rr, env = app.do(t, http.MethodGet, "/post/"+created.InsertedID, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), "hello")

	// arbitrary patch merges into the document
	rr, env = app.do(t, http.MethodPatch, "/post/"+created.InsertedID, tok, map[string]any{"upVote": 7, "extra": "field"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"matched_count": 1, "modified_count": 1}`, string(env.Data))

	doc, err := app.posts.FindByID(context.Background(), created.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.GetString("title"))
	assert.Equal(t, "field", doc.GetString("extra"))

	// delete, then the id is gone
	rr, env = app.do(t, http.MethodDelete, "/post/"+created.InsertedID, tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deleted_count": 1}`, string(env.Data))

	rr, _ = app.do(t, http.MethodGet, "/post/"+created.InsertedID, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr, _ = app.do(t, http.MethodDelete, "/post/"+created.InsertedID, tok, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr, _ = app.do(t, http.MethodPatch, "/post/"+created.InsertedID, tok, map[string]any{"upVote": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnyAuthenticatedUserMayEditAnyPost(t *testing.T) {
	app := newTestApp(t)

	authorTok := app.token(t, "author@b.io")
	otherTok := app.token(t, "other@b.io")

	rr, env := app.do(t, http.MethodPost, "/post", authorTok, map[string]any{"title": "mine", "authorEmail": "author@b.io"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		InsertedID string `json:"inserted_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// no ownership check beyond authentication
	rr, _ = app.do(t, http.MethodPatch, "/post/"+created.InsertedID, otherTok, map[string]any{"title": "stolen"})
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = app.do(t, http.MethodDelete, "/post/"+created.InsertedID, otherTok, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPostsByAuthor(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t, "reader@b.io")

	for _, p := range []map[string]any{
		{"title": "a1", "authorEmail": "alice@b.io"},
		{"title": "b1", "authorEmail": "bob@b.io"},
		{"title": "a2", "authorEmail": "alice@b.io"},
	} {
		rr, _ := app.do(t, http.MethodPost, "/post", tok, p)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr, env := app.do(t, http.MethodGet, "/user/alice@b.io/posts", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0]["title"])
	assert.Equal(t, "a2", list[1]["title"])
}

func TestCommentsFilteredByPost(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t, "c@b.io")

	for _, c := range []map[string]any{
		{"postId": "p1", "content": "first"},
		{"postId": "p2", "content": "other"},
		{"postId": "p1", "content": "second"},
	} {
		rr, _ := app.do(t, http.MethodPost, "/comment", tok, c)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	assertComments := func(postID string, want []string) {
		rr, env := app.do(t, http.MethodGet, "/post/"+postID+"/comments", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var list []map[string]any
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, &list))
		}
		require.Len(t, list, len(want))
		for i, content := range want {
			assert.Equal(t, content, list[i]["content"])
		}
	}

	assertComments("p1", []string{"first", "second"})
	assertComments("p2", []string{"other"})
	assertComments("p3", nil)
}

func TestLiveness(t *testing.T) {
	// the root liveness route is registered in main, not in a module;
	// everything else must 404 without leaking a stack trace
	app := newTestApp(t)
	rr, _ := app.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
