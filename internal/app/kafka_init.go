package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/backoffice/internal/service/outbox"
)

// initKafkaProducer создаёт producer, если заданы брокеры.
// Без брокеров возвращает nil, nil: сервис работает без публикации событий.
func initKafkaProducer(brokers []string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer, nil
}

// newOutboxWorker собирает воркер, который переносит события из outbox в Kafka.
func newOutboxWorker(cfg Config, deps *runtimeDependencies, producer *kafka.Producer, logger *log.Entry) *outbox.Worker {
	if producer == nil || deps == nil || deps.outboxRepo == nil {
		return nil
	}

	return outbox.NewWorker(
		deps.outboxRepo,
		kafka.NewOutboxPublisher(producer, cfg.OutboxTopic),
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithDLQPublisher(kafka.NewOutboxPublisher(producer, cfg.OutboxDLQTopic)),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
}

// newOutboxCleanup собирает воркер, удаляющий отправленные события старше
// OutboxRetention. Нулевой retention отключает очистку.
func newOutboxCleanup(cfg Config, deps *runtimeDependencies, logger *log.Entry) *outbox.CleanupWorker {
	if deps == nil || deps.outboxRepo == nil || cfg.OutboxRetention <= 0 {
		return nil
	}

	return outbox.NewCleanupWorker(
		deps.outboxRepo,
		outbox.WithCleanupLogger(logger.WithField("component", "outbox-cleanup")),
		outbox.WithCleanupInterval(cfg.OutboxCleanupInterval),
		outbox.WithRetention(cfg.OutboxRetention),
		outbox.WithCleanupBatchSize(cfg.OutboxBatchSize),
	)
}

// closeKafka закрывает producer, если он был создан.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
