package handler

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/core/domain"
)

// idPattern is the shape of every resource id accepted in a path. Anything
// else is treated as an unknown route.
var idPattern = regexp.MustCompile(`^[0-9a-z]{8,24}$`)

// currentUser returns the user injected by the Authenticate middleware.
// A missing user means the route was registered without authentication,
// which is answered with 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, middleware.Challenge)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// ValidID reports whether id has the shape of a resource id.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// pathID reads the :id parameter, answering 404 for ids of the wrong shape.
func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if !ValidID(id) {
		return "", echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}
	return id, nil
}
