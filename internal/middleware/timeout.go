package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
)

// Timeout bounds request processing to the given duration. The handler
// chain runs in its own goroutine and sees the deadline through the
// request context; when it misses the deadline without having written
// anything, the client gets a localized 504.
func Timeout(limit time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), limit)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		var mu sync.Mutex
		completed := false
		done := make(chan struct{})

		go func() {
			defer func() {
				// A panic here is already answered by Recovery inside
				// the chain, only the channel must still close.
				_ = recover()
				close(done)
			}()
			c.Next()
			mu.Lock()
			completed = true
			mu.Unlock()
		}()

		select {
		case <-done:
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if completed || c.Writer.Written() {
				return
			}
			message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
		}
	}
}
