package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
	"github.com/pharmabot/basket-service/internal/logger"
)

// ErrorHandler logs errors that handlers attached to the gin context.
// When a handler errored without writing a response, it answers with a
// localized 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		requestID := GetRequestID(c)
		l := logger.Logger()
		l.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Err(last.Err).
			Msg("Request finished with error")

		if c.Writer.Written() {
			return
		}

		message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
		c.JSON(http.StatusInternalServerError,
			dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
	}
}
