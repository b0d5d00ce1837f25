package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/catalog"
	"github.com/mobileriadardania/storefront/internal/upload"
	"github.com/mobileriadardania/storefront/internal/webserver"
	"github.com/mobileriadardania/storefront/internal/whatsapp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	MsgInvalidID      = "Invalid product ID format."
	MsgNotFound       = "Product not found"
	MsgDeleted        = "Product deleted successfully"
	MsgNoFiles        = "No files uploaded."
	MsgFileNotFound   = "File not found"
	MsgFieldsRequired = "All fields are required"
)

type messageResponse struct {
	Message string `json:"message"`
}

type whatsappResponse struct {
	WhatsappURL string `json:"whatsappUrl"`
}

type uploadResponse struct {
	Filenames []string `json:"filenames"`
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

// fail writes {"error": msg}. code and cause only go to the log.
func fail(c echo.Context, status int, code, msg string, cause error) error {
	if cause != nil {
		fields := []zap.Field{
			zap.String("code", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(cause),
		}
		if status >= http.StatusInternalServerError {
			zap.L().Error(msg, fields...)
		} else {
			zap.L().Debug(msg, fields...)
		}
	}
	return c.JSON(status, webserver.ErrorResponse{Error: msg})
}

// failWith maps domain errors to their HTTP status. Anything unrecognized
// becomes a 500 carrying fallback as message.
func failWith(c echo.Context, err error, fallback string) error {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrInvalidID):
		return fail(c, http.StatusBadRequest, "INVALID_ID", MsgInvalidID, nil)
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", MsgNotFound, nil)
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), nil)
	case errors.Is(err, upload.ErrNoFiles):
		return fail(c, http.StatusBadRequest, "NO_FILES", MsgNoFiles, nil)
	case errors.Is(err, upload.ErrTooManyFiles):
		return fail(c, http.StatusBadRequest, "TOO_MANY_FILES", "Too many files.", err)
	case errors.Is(err, upload.ErrFileNotFound):
		return fail(c, http.StatusNotFound, "FILE_NOT_FOUND", MsgFileNotFound, nil)
	case errors.Is(err, whatsapp.ErrMissingField):
		return fail(c, http.StatusBadRequest, "MISSING_FIELD", MsgFieldsRequired, nil)
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback, err)
	}
}
