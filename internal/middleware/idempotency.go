package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyLockTTL = 30 * time.Second

var errRequestInProgress = apperror.New(
	apperror.CodeConflict,
	"a request with this Idempotency-Key is still being processed",
	http.StatusConflict,
)

// Idempotency replays a cached response for a repeated Idempotency-Key and
// rejects a duplicate while the first request still runs. The handler owns
// the cache write and the lock release, via the idempotency_cache_key and
// idempotency_lock_key context values.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			c.Header("Idempotent-Replayed", "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", val)
			c.Abort()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis trouble should not take the endpoint down with it.
			contextutil.GetLogger(ctx, zap.L().Named("middleware.idempotency")).
				Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !isNew {
			abortWith(c, errRequestInProgress)
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
