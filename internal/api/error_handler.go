package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fittracker/user-service/internal/core/domain"
)

// errorResponse is the JSON envelope for transport-level and unexpected errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders domain errors (not found, duplicate email, id supplied on
//     create) as plain-text bodies with deterministic status codes. The
//     message text of the 404 and 409 bodies is part of the API contract.
//   - Keeps Echo's own errors (bind failures, router 404s, validation
//     rejections) in the JSON envelope {"error": "<message>"}.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			_ = c.String(http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			_ = c.String(http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrUserAlreadyPersisted):
			// Client supplied an id on create. Surfaced loudly, never
			// silently accepted.
			_ = c.String(http.StatusInternalServerError, err.Error())
		default:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
			_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}
	}
}
