package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openboard/openboard-api/pkg/helpers"
	"github.com/openboard/openboard-api/pkg/response"
	"github.com/openboard/openboard-api/pkg/validation"
)

// TokenHandler issues bearer credentials. Issuance is out-of-band from
// the request pipeline: the client posts an identity claim at login
// time and holds the token; nothing is persisted server-side.
type TokenHandler struct {
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewTokenHandler(tokens *helpers.TokenManager, logger *logrus.Logger) *TokenHandler {
	return &TokenHandler{Tokens: tokens, Logger: logger}
}

// Issue handles POST /jwt. The claim is an arbitrary JSON object that
// must at minimum carry a valid email; every field is signed into the
// token verbatim.
func (h *TokenHandler) Issue(c *gin.Context) {
	var claim map[string]any
	if err := c.ShouldBindJSON(&claim); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	email, _ := claim["email"].(string)
	if err := validation.Email(email); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"email": "must be a valid email"})
		return
	}

	token, exp, err := h.Tokens.Issue(claim)
	if err != nil {
		helpers.LogError(h.Logger, "token signing failed", err, logrus.Fields{"email": email})
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token, "expires_at": exp}, "token issued")
}
