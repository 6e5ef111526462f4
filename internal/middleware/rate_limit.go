package middleware

import (
	"fmt"
	"net/http"

	"pdf-review-server/internal/util"

	"github.com/gin-gonic/gin"
)

func (m *Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if !m.rateLimiter.Enabled() {
		ctx.Next()
		return
	}

	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		ctx.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
		util.ResponseError(ctx, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	ctx.Next()
}
