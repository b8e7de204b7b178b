package middleware

import (
	"go-paye/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger puts a logger tagged with request_id and user_id on the
// request context, so services can log through contextutil without gin.
// Run it after RequestID and AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.New().String()
			c.Header("X-Request-ID", rid)
		}
		uid := c.GetString("user_id")

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx, _ = contextutil.DecorateLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
