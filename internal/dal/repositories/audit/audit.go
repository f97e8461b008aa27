package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/innatthecape/breakfast-svc/internal/dal/rabbitmq"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/innatthecape/breakfast-svc/internal/service/models/outbox"
)

const maxPublishRetries = 5

// AuditRabbitMQRepository publishes order-accepted events. A failed publish
// is parked in the outbox table so the retry worker can republish it.
type AuditRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queueName  string
}

func NewAuditRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AuditRabbitMQRepository {
	queueName, err := client.DeclareQueue("breakfast.order.accepted", false)
	if err != nil {
		panic(err)
	}

	return &AuditRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queueName:  queueName,
	}
}

// LogOrderAccepted publishes the stored record as a JSON event.
func (r *AuditRabbitMQRepository) LogOrderAccepted(ctx context.Context, rec order.Record) error {
	eventData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = r.client.Publish("", r.queueName, "application/json", eventData)
	if err == nil {
		return nil
	}

	slog.Warn("Failed to publish order event, parking in outbox", "order_id", rec.OrderID, "error", err)

	now := time.Now()
	outboxErr := r.outboxRepo.Insert(ctx, outbox.Message{
		ExchangeName: "",
		RoutingKey:   r.queueName,
		Payload:      eventData,
		ContentType:  "application/json",
		MaxRetries:   maxPublishRetries,
		LastError:    err.Error(),
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if outboxErr != nil {
		return fmt.Errorf("failed to park order event in outbox: %w", outboxErr)
	}

	return nil
}
