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

type UserHandler struct {
	Accounts *application.AccountService
	Logger   *logrus.Logger
}

func NewUserHandler(accounts *application.AccountService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Accounts: accounts, Logger: logger}
}

// Register handles POST /users. The body is stored as-is apart from the
// email contract field; a duplicate email answers 200 with a null
// inserted id rather than an error.
func (h *UserHandler) Register(c *gin.Context) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	email, _ := doc["email"].(string)
	if err := validation.Email(email); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"email": "must be a valid email"})
		return
	}

	res, err := h.Accounts.Register(c.Request.Context(), doc)
	if err != nil {
		helpers.LogError(h.Logger, "registration failed", err, logrus.Fields{"email": email})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if res.Duplicate {
		response.JSON(c, http.StatusOK, gin.H{"inserted_id": nil}, "user already exists")
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"inserted_id": res.InsertedID}, "user registered")
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Accounts.List(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "user list failed", err, nil)
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, users, "users")
}

// GetByEmail handles GET /users/:email. A miss is a distinct 404, not
// an empty success.
func (h *UserHandler) GetByEmail(c *gin.Context) {
	doc, err := h.Accounts.GetByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		helpers.LogError(h.Logger, "user lookup failed", err, logrus.Fields{"email": c.Param("email")})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, doc, "user")
}

// Elevate handles PATCH /users/admin/:id behind the admin gate.
func (h *UserHandler) Elevate(c *gin.Context) {
	id := c.Param("id")
	err := h.Accounts.ElevateToAdmin(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		helpers.LogError(h.Logger, "elevation failed", err, logrus.Fields{"id": id})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"matched_count": 1, "modified_count": 1}, "user elevated")
}

// AdminStatus handles GET /users/admin/:email. The gates in front of it
// (auth, self-check, admin) have already decided; reaching the handler
// means the caller is the admin named in the path.
func (h *UserHandler) AdminStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"admin": true}, "admin status")
}
