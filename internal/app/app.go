package app

import (
	"errors"

	"go-paye/internal/messaging/kafka/producer"
	"go-paye/internal/middleware"
	"go-paye/internal/shared/apperror"
	"go-paye/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the optional infrastructure and registers every route
// on router. The returned cleanup closes what was opened.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	apperror.Init()

	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	logger.Info("payroll engine configured",
		zap.String("components", cfg.Components),
		zap.Int("batch_workers", cfg.BatchWorkers),
	)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, batch idempotency disabled")
	}

	var publisher producer.Publisher
	if cfg.KafkaBroker != "" {
		writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		publisher = producer.NewPublisher(writer)
		logger.Info("kafka connection established")
	} else {
		logger.Warn("KAFKA_BROKER not set, async batches disabled")
	}

	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS*2), cfg.RateLimitBurst*2),
	)

	if err := registerModules(router, cfg, engine, rdb, publisher); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
