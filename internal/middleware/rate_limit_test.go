//go:build !integration

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/domain/dto"
)

func TestIPLimiter_Take(t *testing.T) {
	t.Run("budget runs out after rate requests", func(t *testing.T) {
		l := NewIPLimiter(3, time.Minute)
		defer l.Stop()

		for i := 0; i < 3; i++ {
			allowed, remaining := l.take("10.0.0.1")
			assert.True(t, allowed)
			assert.Equal(t, 2-i, remaining)
		}

		allowed, remaining := l.take("10.0.0.1")
		assert.False(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("clients have independent budgets", func(t *testing.T) {
		l := NewIPLimiter(1, time.Minute)
		defer l.Stop()

		allowed, _ := l.take("10.0.0.1")
		require.True(t, allowed)
		allowed, _ = l.take("10.0.0.1")
		require.False(t, allowed)

		allowed, _ = l.take("10.0.0.2")
		assert.True(t, allowed)
		assert.Equal(t, 2, l.Tracked())
	})

	t.Run("an expired window opens a fresh budget", func(t *testing.T) {
		l := NewIPLimiter(1, 30*time.Millisecond)
		defer l.Stop()

		allowed, _ := l.take("10.0.0.1")
		require.True(t, allowed)
		allowed, _ = l.take("10.0.0.1")
		require.False(t, allowed)

		time.Sleep(50 * time.Millisecond)

		allowed, _ = l.take("10.0.0.1")
		assert.True(t, allowed)
	})
}

func TestIPLimiter_Handler(t *testing.T) {
	newRouter := func(l *IPLimiter) *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), l.Handler())
		router.POST("/api/optimize", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("sets the limit headers on allowed requests", func(t *testing.T) {
		l := NewIPLimiter(5, time.Minute)
		defer l.Stop()
		router := newRouter(l)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/optimize", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("rejects over-budget clients with a localized 429", func(t *testing.T) {
		l := NewIPLimiter(1, time.Minute)
		defer l.Stop()
		router := newRouter(l)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/optimize", nil))
		require.Equal(t, http.StatusOK, w.Code)

		req := httptest.NewRequest(http.MethodPost, "/api/optimize", nil)
		req.Header.Set("Accept-Language", "it")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, strconv.Itoa(60), w.Header().Get("Retry-After"))

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeRateLimit, resp.Error)
		assert.Equal(t, "Troppe richieste, riprova più tardi", resp.Message)
		assert.NotEmpty(t, resp.RequestID)
	})
}

func TestIPLimiter_Stop(t *testing.T) {
	l := NewIPLimiter(1, time.Minute)
	l.Stop()
	// A second Stop must not panic on the closed channel.
	l.Stop()
}
