package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AcceptsJSON rejects requests whose Accept header admits neither
// application/json nor */* with 406.
func AcceptsJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !acceptsJSON(c.Request().Header.Get(echo.HeaderAccept)) {
				return echo.NewHTTPError(http.StatusNotAcceptable, "Not Acceptable")
			}
			return next(c)
		}
	}
}

// RequireJSONBody rejects POST and PUT requests that do not declare a JSON
// body. Other methods pass through.
func RequireJSONBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost && req.Method != http.MethodPut {
				return next(c)
			}
			mt, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
			if err != nil || mt != echo.MIMEApplicationJSON {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid Content-Type. Expected application/json")
			}
			return next(c)
		}
	}
}

func acceptsJSON(header string) bool {
	for _, part := range strings.Split(header, ",") {
		mt, _, _ := strings.Cut(part, ";")
		switch strings.ToLower(strings.TrimSpace(mt)) {
		case echo.MIMEApplicationJSON, "application/*", "*/*":
			return true
		}
	}
	return false
}
