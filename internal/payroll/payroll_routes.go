package payroll

import (
	"go-paye/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	guards []gin.HandlerFunc,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(guards...)
	{
		payrolls.POST("/calculate", middleware.RBACAuthorize(rbacService, "payroll", "calculate"), handler.Calculate)
		if redisClient != nil {
			payrolls.POST(
				"/calculate/batch",
				middleware.RBACAuthorize(rbacService, "payroll", "calculate"),
				middleware.Idempotency(redisClient),
				handler.CalculateBatch,
			)
		} else {
			payrolls.POST("/calculate/batch", middleware.RBACAuthorize(rbacService, "payroll", "calculate"), handler.CalculateBatch)
		}
		payrolls.POST("/import", middleware.RBACAuthorize(rbacService, "payroll", "import"), handler.Import)
		payrolls.GET("/template", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Template)
		payrolls.POST("/payslip", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.Payslip)
	}
}
