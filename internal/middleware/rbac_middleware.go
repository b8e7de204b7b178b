package middleware

import (
	"go-paye/internal/domain"
	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			abortWith(c, apperror.ErrUnauthorized.WithReason("missing auth context"))
			return
		}

		req := domain.EnforceRequest{
			Subject:  userID,
			Role:     c.GetString("role"),
			Resource: resource,
			Action:   action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L().Named("middleware.rbac")).
				Error("rbac enforce failed", zap.Error(err))
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden.WithReason("requires %s:%s", resource, action))
			return
		}
		c.Next()
	}
}
