package app

import (
	"os"
	"strconv"
	"strings"

	"go-paye/internal/events"
	"go-paye/internal/payroll"
)

// Config is read from the environment; cmd mains load .env first.
type Config struct {
	AppEnv            string
	LogLevel          string
	Port              string
	JWTSecret         string
	RedisAddr         string
	RBACModelPath     string
	Components        string
	BatchWorkers      int
	RateLimitRPS      float64
	RateLimitBurst    int
	KafkaBroker       string
	BatchRequestTopic string
	BatchResultTopic  string
	ConsumerGroupID   string
}

func LoadConfig() Config {
	return Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		Port:              getEnv("PORT", "3000"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RBACModelPath:     os.Getenv("RBAC_MODEL_PATH"),
		Components:        getEnv("PAYROLL_COMPONENTS", payroll.DefaultComponentSpec),
		BatchWorkers:      getEnvInt("PAYROLL_BATCH_WORKERS", 1),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		BatchRequestTopic: getEnv("PAYROLL_BATCH_REQUEST_TOPIC", events.PayrollBatchRequestedTopic),
		BatchResultTopic:  getEnv("PAYROLL_BATCH_RESULT_TOPIC", events.PayrollBatchCompletedTopic),
		ConsumerGroupID:   getEnv("PAYROLL_CONSUMER_GROUP", "go-paye-payroll-batch"),
	}
}

// Engine builds the default payroll engine from Components and BatchWorkers.
func (c Config) Engine() (*payroll.Engine, error) {
	cfg, err := payroll.ParseComponentSpec(c.Components)
	if err != nil {
		return nil, err
	}
	return payroll.NewEngine(cfg, payroll.WithWorkers(c.BatchWorkers)), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}
