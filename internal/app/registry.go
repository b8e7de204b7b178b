package app

import (
	"net/http"

	"go-paye/internal/messaging/kafka/producer"
	"go-paye/internal/middleware"
	"go-paye/internal/payroll"
	"go-paye/internal/payrollqueue"
	"go-paye/internal/rbac"
	"go-paye/internal/rbac/infra"
	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	engine *payroll.Engine,
	rdb *redis.Client,
	publisher producer.Publisher,
) error {
	apperror.Init()

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(rbac.NewStaticRepository(rbac.DefaultPolicy), enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	payrollService := payroll.NewService(engine, cfg.BatchWorkers)

	// --- Handlers ---
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	guards := []gin.HandlerFunc{
		middleware.AuthMiddleware([]byte(cfg.JWTSecret)),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	api := router.Group("/api/v1")
	{
		payroll.RegisterRoutes(api, payrollHandler, rbacService, guards, rdb)
		rbac.RegisterRoutes(api, rbacHandler, guards)

		if publisher != nil {
			queueService := payrollqueue.NewService(publisher, cfg.BatchRequestTopic)
			payrollqueue.RegisterRoutes(api, payrollqueue.NewHandler(queueService), rbacService, guards)
		}
	}

	return nil
}
