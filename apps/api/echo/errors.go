package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Every error body is `{"error": "<message>"}`; server errors never expose their cause.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprint(origErr.Message)
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
		case *core.AuthError:
			code = http.StatusUnauthorized
			message = origErr.Error()
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)

			if logger != nil {
				id, _ := contextIdentity(ctx)
				logger.Error(message, errors.Wrap(err, ctx.Request().Method+" "+ctx.Path()), id)
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, errorResponse{Error: message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
