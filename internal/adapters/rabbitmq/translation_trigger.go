package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"
)

const (
	TranslationExchange   = "content"
	TranslationRoutingKey = "content.translate"

	publishTimeout = 10 * time.Second
)

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventValidator проверяет событие по JSON-схеме перед отправкой.
type EventValidator interface {
	Validate(name, version string, body []byte) error
}

// RabbitMQTranslationTrigger реализует TranslationTriggerPort.
type RabbitMQTranslationTrigger struct {
	producer   MessagePublisher
	validator  EventValidator
	routingKey string
}

func NewRabbitMQTranslationTrigger(producer MessagePublisher, validator EventValidator, routingKey string) (*RabbitMQTranslationTrigger, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		routingKey = TranslationRoutingKey
	}
	return &RabbitMQTranslationTrigger{
		producer:   producer,
		validator:  validator,
		routingKey: routingKey,
	}, nil
}

func (a *RabbitMQTranslationTrigger) RequestTranslation(ctx context.Context, req domain.TranslationRequest) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "RabbitMQTranslationTrigger",
		"routing_key": a.routingKey,
		"request_id":  req.RequestID.String(),
		"kind":        string(req.Kind),
	})

	body, err := json.Marshal(newTranslationRequestedEvent(req))
	if err != nil {
		adapterLogger.Error("Failed to marshal translation event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal translation event: %w", err)
	}

	if a.validator != nil {
		if err := a.validator.Validate(contracts.TranslationRequestedEvent, contracts.V1, body); err != nil {
			adapterLogger.Error("Translation event violates contract", err, nil)
			return fmt.Errorf("%w: %w", domain.ErrInvalidTranslationRequest, err)
		}
	}

	headers := amqp.Table{
		"event_type":    contracts.TranslationRequestedEvent,
		"event_version": contracts.V1,
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		headers["x-trace-id"] = traceID
	}
	msg := rabbitmq_producer.NewJSONMessage(req.RequestID.String(), body, headers, time.Now())

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish translation event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish translation event: %w", err)
	}

	adapterLogger.Info("Successfully published translation event", nil)
	return nil
}

// NoopTranslationTrigger используется, когда брокер выключен в конфигурации.
type NoopTranslationTrigger struct{}

func (NoopTranslationTrigger) RequestTranslation(ctx context.Context, req domain.TranslationRequest) error {
	contextkeys.LoggerFromContext(ctx).Warn("RabbitMQ is disabled, translation request dropped", port.Fields{
		"request_id": req.RequestID.String(),
		"kind":       string(req.Kind),
		"content_id": req.ContentID,
	})
	return nil
}
