package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"erp/internal/domain/entity"

	"github.com/pkg/errors"
	cdkpubsub "gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
)

const memoryAckDeadline = time.Minute

// MemoryPublisher publishes events onto an in-process gocloud topic.
type MemoryPublisher struct {
	topic  *cdkpubsub.Topic
	subs   []*cdkpubsub.Subscription
	logger *slog.Logger
}

// NewMemoryPublisher creates the publisher with a fresh in-memory topic.
func NewMemoryPublisher(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{
		topic:  mempubsub.NewTopic(),
		logger: logger,
	}
}

// Subscribe attaches a new subscription. Only messages sent after this call are delivered to it.
func (p *MemoryPublisher) Subscribe() *cdkpubsub.Subscription {
	sub := mempubsub.NewSubscription(p.topic, memoryAckDeadline)
	p.subs = append(p.subs, sub)

	return sub
}

// PublishAuthEvent sends the JSON-encoded event with its attributes as metadata.
func (p *MemoryPublisher) PublishAuthEvent(ctx context.Context, event *entity.AuthEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	err = p.topic.Send(ctx, &cdkpubsub.Message{
		Body:     body,
		Metadata: eventAttributes(event),
	})

	return errors.Wrap(err, "failed to send event")
}

// Close shuts the subscriptions down, then the topic.
func (p *MemoryPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, sub := range p.subs {
		if err := sub.Shutdown(ctx); err != nil {
			p.logger.Warn("failed to shut down subscription", slog.Any("error", err))
		}
	}

	return errors.WithStack(p.topic.Shutdown(ctx))
}

// AuditLogSink drains a subscription and writes every event to the log.
type AuditLogSink struct {
	sub    *cdkpubsub.Subscription
	logger *slog.Logger
}

// NewAuditLogSink creates a sink over sub.
func NewAuditLogSink(sub *cdkpubsub.Subscription, logger *slog.Logger) *AuditLogSink {
	return &AuditLogSink{sub: sub, logger: logger}
}

// Run receives until ctx is done or the subscription shuts down.
func (s *AuditLogSink) Run(ctx context.Context) {
	for {
		msg, err := s.sub.Receive(ctx)
		if err != nil {
			// Receive fails permanently once ctx ends or the subscription is shut down.
			return
		}

		var event entity.AuthEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			s.logger.Warn("dropping undecodable audit event", slog.Any("error", err))
			msg.Ack()

			continue
		}

		s.logger.Info("audit event",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("username", event.Username),
			slog.String("user_id", event.UserID),
			slog.String("request_id", event.RequestID),
			slog.Time("occurred_at", event.OccurredAt),
		)
		msg.Ack()
	}
}
