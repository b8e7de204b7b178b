package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-paye/internal/messaging/kafka/consumer"
	"go-paye/internal/messaging/kafka/producer"
	"go-paye/internal/payroll"
	"go-paye/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          cfg.BatchRequestTopic,
		GroupID:        cfg.ConsumerGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	payrollService := payroll.NewService(engine, cfg.BatchWorkers)
	publisher := producer.NewPublisher(kafkaWriter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumePayrollBatchRequested(ctx, reader, payrollService, publisher, cfg.BatchResultTopic, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
