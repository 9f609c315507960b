package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oan-pulse/pulse/internal/model"
)

var errExpiredToken = errors.New("token expired")

// authMiddleware resolves the caller's session from the bearer header,
// falling back to the token_in query parameter used by the manager
// routes, and stores the user on the request context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := ""
		if auth := c.Request().Header.Get("Authorization"); auth != "" {
			if t := strings.TrimPrefix(auth, "Bearer "); t != auth {
				token = t
			}
		}
		if token == "" {
			token = c.QueryParam("token_in")
		}
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization required"})
		}

		user, err := s.userForToken(token)
		if err != nil {
			if errors.Is(err, errExpiredToken) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token expired"})
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}

		c.Set("user", &user)
		return next(c)
	}
}

// managerMiddleware restricts a route to managers and admins.
func (s *Server) managerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := currentUser(c)
		if user == nil || !user.HasPermission(model.PermApproveTimesheet) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *model.User {
	user, _ := c.Get("user").(*model.User)
	return user
}
