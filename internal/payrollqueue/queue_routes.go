package payrollqueue

import (
	"go-paye/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, guards []gin.HandlerFunc) {
	batches := r.Group("/payrolls/batches")
	batches.Use(guards...)
	{
		batches.POST("", middleware.RBACAuthorize(rbacService, "payroll", "import"), handler.Enqueue)
	}
}
