package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		m.app.Logger.Debugf("Rate limit exceeded for %s", ctx.ClientIP())
		ctx.Header("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
		ctx.String(http.StatusTooManyRequests, "Too many requests, retry in %.0f seconds", retryAfter.Seconds())
		ctx.Abort()
		return
	}

	ctx.Next()
}
