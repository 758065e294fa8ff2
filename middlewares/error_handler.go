package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/enquiry/internal"
)

// ErrorResponse is the JSON body for every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONErrorHandler renders handler errors as {"error": message}.
// HTTPErrors keep their status and message; anything else, panics included,
// becomes a 500 with a generic message and is logged with its cause.
func JSONErrorHandler() internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		if he := internal.AsHTTPError(err); he != nil {
			if he.Code >= http.StatusInternalServerError {
				c.LogError("request failed", slog.Int("status", he.Code), slog.Any("error", errOrSelf(he)))
			} else if he.Err != nil {
				c.LogWarn("request rejected", slog.Int("status", he.Code), slog.String("error", he.Err.Error()))
			}
			return c.JSON(he.Code, ErrorResponse{Error: he.Message})
		}

		if pe, ok := AsPanicError(err); ok {
			c.LogError("request panicked", slog.Any("panic", pe.Value))
		} else {
			c.LogError("request failed", slog.String("error", err.Error()))
		}

		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: http.StatusText(http.StatusInternalServerError),
		})
	}
}

func errOrSelf(he *internal.HTTPError) error {
	if he.Err != nil {
		return he.Err
	}
	return he
}
