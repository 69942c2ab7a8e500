package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "inventory-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// errorCodes maps sentinel errors onto HTTP status codes. Order matters:
// the first match wins.
var errorCodes = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrFileMissing, http.StatusNotFound},
	{apperrors.ErrInvalidSelector, http.StatusBadRequest},
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrTooManyAttempts, http.StatusTooManyRequests},
	{apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse writes the error envelope. Client errors are logged at warn
// level, everything else at error level with the internal cause.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		fields := []zap.Field{
			zap.Int("code", httpErr.Code),
			zap.String("message", httpErr.Message),
			zap.Any("context", httpErr.Context),
		}
		if httpErr.Err != nil {
			fields = append(fields, zap.Error(httpErr.Err))
		}
		logByCode(logger, httpErr.Code, "HTTP Error", fields...)
		return c.JSON(httpErr.Code, &HTTPResponse{Status: false, Message: httpErr.Message, Body: httpErr.Details})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make(map[string]string, len(validationErrors))
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			details[e.Field()] = e.Tag()
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", e.Field(), e.Tag()))
		}
		logger.Warn("Validation error", zap.Strings("fields", msgs))
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: "validation failed: " + strings.Join(msgs, "; "),
			Body:    details,
		})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		logger.Warn("Invalid input", zap.String("message", inputErr.Message))
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: inputErr.Message})
	}

	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			logByCode(logger, m.code, "Request failed", zap.Error(err))
			return c.JSON(m.code, &HTTPResponse{Status: false, Message: clientMessage(m.code, m.err, err)})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{
		Status:  false,
		Message: "internal server error",
	})
}

// clientMessage keeps server-side causes out of the response body.
func clientMessage(code int, sentinel, err error) string {
	if code >= http.StatusInternalServerError {
		return sentinel.Error()
	}
	return err.Error()
}

func logByCode(logger *zap.Logger, code int, msg string, fields ...zap.Field) {
	if code >= http.StatusInternalServerError {
		logger.Error(msg, fields...)
		return
	}
	logger.Warn(msg, fields...)
}

// SetAttachmentHeaders prepares the response for a file download.
func SetAttachmentHeaders(c echo.Context, contentType, fileName string) {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, ContentDisposition(fileName))
}

// ContentDisposition builds an attachment header with an ASCII fallback
// name and an RFC 6266 UTF-8 name.
func ContentDisposition(fileName string) string {
	var fallback strings.Builder
	for _, r := range fileName {
		switch {
		case r == '"' || r == '\\':
			fallback.WriteByte('_')
		case r < 0x20 || r > 0x7e:
			fallback.WriteByte('_')
		default:
			fallback.WriteRune(r)
		}
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback.String(), encodeExtValue(fileName))
}

// encodeExtValue percent-encodes everything outside the RFC 5987 attr-char set.
func encodeExtValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
