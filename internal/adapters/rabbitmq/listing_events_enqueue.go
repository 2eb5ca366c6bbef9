package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/constants"
	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/port"
	"catalog-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	lifecycleEventType    = "ListingLifecycleEvent"
	lifecycleEventVersion = "1.0.0"
)

// ListingLifecycleDTO - тело сообщения о событии жизненного цикла объявления
type ListingLifecycleDTO struct {
	ListingID  uuid.UUID `json:"listingId"`
	ManagerID  string    `json:"managerId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

type ListingEventsAdapter struct {
	producer *rabbitmq_producer.Publisher
}

func NewListingEventsAdapter(producer *rabbitmq_producer.Publisher) (*ListingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ListingEventsAdapter{producer: producer}, nil
}

func (a *ListingEventsAdapter) ListingCreated(ctx context.Context, listingID uuid.UUID, managerID string) error {
	return a.publish(ctx, constants.RoutingKeyListingCreated, listingID, managerID, "created")
}

func (a *ListingEventsAdapter) ListingUpdated(ctx context.Context, listingID uuid.UUID, managerID string) error {
	return a.publish(ctx, constants.RoutingKeyListingUpdated, listingID, managerID, "updated")
}

func (a *ListingEventsAdapter) ListingDeleted(ctx context.Context, listingID uuid.UUID, managerID string) error {
	return a.publish(ctx, constants.RoutingKeyListingDeleted, listingID, managerID, "deleted")
}

func (a *ListingEventsAdapter) publish(ctx context.Context, routingKey string, listingID uuid.UUID, managerID, action string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ListingEventsAdapter",
		"routing_key": routingKey,
		"listing_id":  listingID.String(),
	})

	dto := ListingLifecycleDTO{
		ListingID:  listingID,
		ManagerID:  managerID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	}

	body, _ := json.Marshal(dto)

	// Проверяем собственное сообщение по той же схеме, что и потребители
	if err := contracts.ValidateEvent(lifecycleEventType, lifecycleEventVersion, body); err != nil {
		adapterLogger.Error("Outgoing event failed schema validation", err, nil)
		return fmt.Errorf("rabbitmq adapter: event payload is invalid: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    lifecycleEventType,
			"event-version": lifecycleEventVersion,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish lifecycle event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for listing %s: %w", listingID, err)
	}

	adapterLogger.Info("Successfully published lifecycle event", port.Fields{"action": action})
	return nil
}
