package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/ports"
)

type TokenHandler struct {
	auth ports.AuthService
}

func NewTokenHandler(auth ports.AuthService) *TokenHandler {
	return &TokenHandler{auth: auth}
}

// Issue handles POST /api/token. The caller authenticates with Basic
// credentials and receives a bearer token usable on every other route.
//
// @Summary      Issue a bearer token
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/token [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	token, err := h.auth.IssueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer"})
}
