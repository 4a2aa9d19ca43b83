package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as the {message, ...} JSON envelope.
// Handlers attach structured payloads (field lists, availability counts) by
// passing a map as the HTTPError message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := map[string]any{"message": err.Error()}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			body = map[string]any{"message": m}
		case map[string]any:
			body = m
		}
	}

	_ = c.JSON(code, body)
}
