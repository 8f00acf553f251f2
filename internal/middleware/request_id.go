package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/navigatingnc/bid-management-system/internal/util"
)

const RequestIDKey = "requestId"

// RequestIDMiddleware tags every request with a short id so log lines from
// one request can be grouped.
func (m Middleware) RequestIDMiddleware(ctx *gin.Context) {
	id := ctx.GetHeader("X-Request-Id")
	if id == "" {
		generated, err := util.GenerateNChar(12)
		if err != nil {
			m.app.Logger.Debugf("Failed to generate request id: %v", err)
			ctx.Next()
			return
		}
		id = generated
	}

	ctx.Set(RequestIDKey, id)
	ctx.Header("X-Request-Id", id)
	ctx.Next()
}
