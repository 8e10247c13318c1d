package kafka

import (
	"context"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	now      func() time.Time
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicBackofficeEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// Topic возвращает топик назначения.
func (p *OutboxTopicPublisher) Topic() string {
	return p.topic
}

// Publish отправляет конверт с ключом по агрегату, чтобы события одного
// заказа попадали в одну партицию.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return errProducerNotInitialized
	}

	headers := map[string]string{
		HeaderEventType:     event.EventType,
		HeaderAggregateType: event.AggregateType,
	}
	return p.producer.PublishEvent(ctx, p.topic, MessageKey(event), NewEnvelope(event, p.now()), headers)
}

// MessageKey возвращает ключ партиционирования: тип и id агрегата, либо id события,
// если агрегат не указан.
func MessageKey(event domain.OutboxMessage) string {
	if event.AggregateID == "" {
		return event.ID
	}
	return event.AggregateType + ":" + event.AggregateID
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
