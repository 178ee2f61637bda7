package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdnotes/notes-api/internal/api/middleware"
	"github.com/mdnotes/notes-api/internal/core/domain"
)

// callerID extracts the user id injected by the Auth middleware. Its absence
// means the route was mounted without the middleware.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "access denied")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return domain.InvalidInput(err.Error())
	}
	return nil
}

// resultLabel turns an operation outcome into a metrics label.
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		return "invalid"
	case domain.KindNotFound:
		return "not_found"
	case domain.KindForbidden:
		return "forbidden"
	case domain.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}
