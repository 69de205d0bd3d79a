package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

// Context keys populated by Authenticate.
const (
	ContextKeyUser = "user"
	ContextKeyRole = "role"
)

// Challenge is sent in WWW-Authenticate with every 401 response.
const Challenge = `Basic realm="storefront"`

// Authenticate resolves the Authorization header to a stored user. Basic
// credentials (email:password) and bearer tokens are both accepted. On
// success the user and its role are placed in the echo context.
func Authenticate(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				return unauthorized(c, "missing_header", "missing authorization header")
			}

			scheme, value, ok := strings.Cut(header, " ")
			value = strings.TrimSpace(value)
			if !ok || value == "" {
				return unauthorized(c, "malformed_header", "invalid authorization header")
			}

			ctx := c.Request().Context()
			var (
				user *domain.User
				err  error
			)
			switch strings.ToLower(scheme) {
			case "basic":
				email, password, ok := decodeBasic(value)
				if !ok {
					return unauthorized(c, "malformed_header", "invalid authorization header")
				}
				user, err = auth.Authenticate(ctx, email, password)
				if err != nil {
					return unauthorized(c, "invalid_credentials", "invalid credentials")
				}
			case "bearer":
				user, err = auth.AuthenticateToken(ctx, value)
				if err != nil {
					return unauthorized(c, "invalid_token", "invalid token")
				}
			default:
				return unauthorized(c, "malformed_header", "invalid authorization header")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyRole, user.Role)
			return next(c)
		}
	}
}

// decodeBasic splits base64(email:password) at the first colon.
func decodeBasic(encoded string) (email, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	email, password, ok = strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

func unauthorized(c echo.Context, reason, msg string) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, Challenge)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
