package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sps/users-api/internal/api/middleware"
	"github.com/sps/users-api/internal/core/domain"
)

// ctxPrincipal rebuilds the requester identity injected by the Auth
// middleware. A missing subject means the middleware did not run.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	subject, _ := c.Get(middleware.ContextUserID).(string)
	if subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.ContextEmail).(string)
	role, _ := c.Get(middleware.ContextRole).(string)

	return &domain.Principal{
		Subject: subject,
		Email:   email,
		Role:    domain.Role(role),
	}, nil
}
