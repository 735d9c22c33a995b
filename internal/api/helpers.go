package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// writeErr maps workspace errors onto HTTP statuses.
func writeErr(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return writeNotFound(c, err.Error())
	case errors.Is(err, ErrInvalidRequest):
		return writeBadRequest(c, err.Error())
	default:
		return writeError(c, http.StatusUnprocessableEntity, "table_error", err.Error(), "", "load_failed")
	}
}

func parseID(s, param string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, newInvalidRequest(fmt.Sprintf("%s must be an unsigned 32-bit integer", param))
	}
	return uint32(v), nil
}

// queryInt reads a non-negative integer query parameter, returning def when
// it is absent.
func queryInt(c *echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, newInvalidRequest(fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return v, nil
}
