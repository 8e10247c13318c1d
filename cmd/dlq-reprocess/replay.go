package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/backoffice/internal/service/outbox"
)

var errNotDLQRecord = errors.New("message is not an outbox dlq record")

type replayStats struct {
	mode      string
	processed int
	replayed  int
	filtered  int
	skipped   int
}

func (s *replayStats) add(other replayStats) {
	s.processed += other.processed
	s.replayed += other.replayed
	s.filtered += other.filtered
	s.skipped += other.skipped
}

// candidate хранит событие, восстановленное из DLQ, и метаданные сбоя.
type candidate struct {
	event    domain.OutboxMessage
	failure  string
	failedAt time.Time
}

type replayer struct {
	cfg  config
	deps dependencies
	now  func() time.Time
}

func newReplayer(cfg config, deps dependencies) *replayer {
	return &replayer{cfg: cfg, deps: deps, now: time.Now}
}

func (r *replayer) run(ctx context.Context) (replayStats, error) {
	stats := replayStats{mode: "dry-run"}
	if r.cfg.execute {
		stats.mode = "execute"
	}

	if r.deps.client == nil || r.deps.consumer == nil {
		return stats, fmt.Errorf("kafka client and consumer are required")
	}
	if r.cfg.execute && r.deps.sender == nil {
		return stats, fmt.Errorf("producer is required in execute mode")
	}

	partitions, err := r.deps.client.Partitions(r.cfg.sourceTopic)
	if err != nil {
		return stats, fmt.Errorf("get partitions for topic %s: %w", r.cfg.sourceTopic, err)
	}
	if len(partitions) == 0 {
		log.WithField("topic", r.cfg.sourceTopic).Warn("source topic has no partitions")
		return stats, nil
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	for _, partition := range partitions {
		remaining := r.cfg.limit - stats.processed
		if remaining <= 0 {
			break
		}
		partStats, err := r.processPartition(ctx, partition, remaining)
		stats.add(partStats)
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// offsetRange возвращает [start, end) для чтения партиции с учётом -from-newest.
func (r *replayer) offsetRange(partition int32, limit int) (int64, int64, error) {
	oldest, err := r.deps.client.GetOffset(r.cfg.sourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return 0, 0, fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := r.deps.client.GetOffset(r.cfg.sourceTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return 0, 0, fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}

	start := oldest
	if r.cfg.fromNewest {
		start = max(newest-int64(limit), oldest)
	}
	return start, newest, nil
}

func (r *replayer) processPartition(ctx context.Context, partition int32, limit int) (replayStats, error) {
	var stats replayStats

	start, end, err := r.offsetRange(partition, limit)
	if err != nil {
		return stats, err
	}
	if end <= start {
		return stats, nil
	}

	pc, err := r.deps.consumer.ConsumePartition(r.cfg.sourceTopic, partition, start)
	if err != nil {
		return stats, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idle := time.NewTimer(r.cfg.idleTimeout)
	defer idle.Stop()

	for stats.processed < limit {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-idle.C:
			return stats, nil
		case consumerErr := <-pc.Errors():
			if consumerErr != nil {
				return stats, fmt.Errorf("partition %d consumer error: %w", partition, consumerErr)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil || msg.Offset >= end {
				return stats, nil
			}
			idle.Reset(r.cfg.idleTimeout)

			stats.processed++
			if err := r.handle(ctx, msg, &stats); err != nil {
				return stats, err
			}
			if msg.Offset+1 >= end {
				return stats, nil
			}
		}
	}

	return stats, nil
}

func (r *replayer) handle(ctx context.Context, msg *sarama.ConsumerMessage, stats *replayStats) error {
	fields := log.Fields{"partition": msg.Partition, "offset": msg.Offset}

	c, err := decodeCandidate(msg.Value)
	if err != nil {
		stats.skipped++
		log.WithError(err).WithFields(fields).Warn("skip unsupported dlq message")
		return nil
	}
	if !r.matches(c.event) {
		stats.filtered++
		return nil
	}

	fields["event_id"] = c.event.ID
	fields["event_type"] = c.event.EventType
	fields["aggregate_id"] = c.event.AggregateID

	if !r.cfg.execute {
		stats.replayed++
		log.WithFields(fields).WithField("failure", c.failure).Info("dlq replay candidate")
		return nil
	}

	if err := r.publish(ctx, c); err != nil {
		return fmt.Errorf("publish replay of %s: %w", c.event.ID, err)
	}
	stats.replayed++
	log.WithFields(fields).Debug("dlq event replayed")
	return nil
}

func (r *replayer) matches(event domain.OutboxMessage) bool {
	if r.cfg.eventType != "" && event.EventType != r.cfg.eventType {
		return false
	}
	if r.cfg.aggregateID != "" && event.AggregateID != r.cfg.aggregateID {
		return false
	}
	return true
}

// publish отправляет событие тем же конвертом и ключом, что и outbox-паблишер.
func (r *replayer) publish(ctx context.Context, c candidate) error {
	value, err := json.Marshal(kafka.NewEnvelope(c.event, r.now()))
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	headers := map[string]string{
		kafka.HeaderEventType:     c.event.EventType,
		kafka.HeaderAggregateType: c.event.AggregateType,
		kafka.HeaderOriginalTopic: r.cfg.sourceTopic,
		kafka.HeaderErrorMessage:  c.failure,
	}
	if !c.failedAt.IsZero() {
		headers[kafka.HeaderFailedAt] = c.failedAt.UTC().Format(time.RFC3339)
	}

	return r.deps.sender.Send(ctx, r.cfg.targetTopic, kafka.MessageKey(c.event), value, headers)
}

// decodeCandidate разбирает конверт DLQ и вложенную запись outbox-воркера.
func decodeCandidate(value []byte) (candidate, error) {
	var envelope kafka.Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return candidate{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return candidate{}, errNotDLQRecord
	}

	var record outbox.DLQRecord
	if err := json.Unmarshal(envelope.Payload, &record); err != nil {
		return candidate{}, fmt.Errorf("decode dlq record: %w", err)
	}
	if len(record.Payload) == 0 {
		return candidate{}, fmt.Errorf("%w: original payload is missing", errNotDLQRecord)
	}

	return candidate{
		event: domain.OutboxMessage{
			ID:            firstNonEmpty(record.OutboxID, envelope.ID),
			AggregateType: firstNonEmpty(record.AggregateType, envelope.AggregateType),
			AggregateID:   firstNonEmpty(record.AggregateID, envelope.AggregateID),
			EventType:     firstNonEmpty(record.EventType, envelope.EventType),
			Payload:       []byte(record.Payload),
		},
		failure:  record.PublishError,
		failedAt: record.DLQPublishedAt,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
