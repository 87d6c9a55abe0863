package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, auth.ErrNotAuthenticated.Error())
	errBadCredentials = echo.NewHTTPError(http.StatusBadRequest, "login yoki parol noto'g'ri")
	errInvalidEmail   = echo.NewHTTPError(http.StatusBadRequest, "email manzili noto'g'ri")
	errRateLimited    = echo.NewHTTPError(http.StatusTooManyRequests, "urinishlar soni ko'payib ketdi, keyinroq qayta urining")
	errDisabled       = echo.NewHTTPError(http.StatusForbidden, "hisob bloklangan")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "ruxsat berilmagan")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "topilmadi")
)

// mapDomainError translates service-layer sentinels into HTTP errors with the
// user-facing Uzbek text the admin page shows as toasts.
func mapDomainError(err error) (*echo.HTTPError, bool) {
	switch err {
	case auth.ErrNotAuthenticated:
		return errUnauthorized, true
	case backend.ErrUnknownIdentity, backend.ErrWrongPassword:
		return errBadCredentials, true
	case backend.ErrInvalidEmail:
		return errInvalidEmail, true
	case backend.ErrRateLimited:
		return errRateLimited, true
	case backend.ErrDisabled:
		return errDisabled, true
	case news.ErrNotFound, employee.ErrNotFound:
		return errHttpNotFound, true
	}
	return nil, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if herr, ok := mapDomainError(cause); ok {
			cause = herr
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = errUnauthorized.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			args := []interface{}{errors.Wrap(err, msg)}
			if identity, iErr := getContextIdentity(ctx); iErr == nil {
				args = append(args, identity)
			}
			logger.Error(msg, args...)
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
