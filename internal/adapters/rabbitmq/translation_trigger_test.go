package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/schemas"
)

type capturePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (c *capturePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	c.routingKey = routingKey
	c.msg = msg
	return c.err
}

func validRequest() domain.TranslationRequest {
	return domain.TranslationRequest{
		RequestID:   uuid.MustParse("6f1c2a8e-3a4b-4c5d-9e6f-7a8b9c0d1e2f"),
		Kind:        domain.ContentTestimonial,
		ContentID:   "t-7",
		SourceLang:  "pt",
		TargetLangs: []string{"en", "fr"},
		Fields:      map[string]string{"quote": "Excelente serviço", "author": ""},
		RequestedAt: time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}
}

func newRegistry(t *testing.T) *contracts.Registry {
	t.Helper()
	r, err := contracts.NewRegistry(schemas.SchemasFS)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRequestTranslationPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	trigger, err := rabbitmq.NewRabbitMQTranslationTrigger(pub, newRegistry(t), "")
	if err != nil {
		t.Fatal(err)
	}

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	if err := trigger.RequestTranslation(ctx, validRequest()); err != nil {
		t.Fatalf("RequestTranslation: %v", err)
	}

	if pub.routingKey != rabbitmq.TranslationRoutingKey {
		t.Errorf("routing key = %q", pub.routingKey)
	}
	if pub.msg.DeliveryMode != amqp.Persistent || pub.msg.MessageId != "6f1c2a8e-3a4b-4c5d-9e6f-7a8b9c0d1e2f" {
		t.Errorf("unexpected message properties %+v", pub.msg)
	}
	if pub.msg.Headers["x-trace-id"] != "trace-1" {
		t.Errorf("trace id header missing: %v", pub.msg.Headers)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(pub.msg.Body, &body); err != nil {
		t.Fatal(err)
	}
	fields := body["fields"].(map[string]interface{})
	if _, ok := fields["author"]; ok {
		t.Error("empty fields must not be sent for translation")
	}
	if body["kind"] != "testimonial" || body["requested_at"] != "2026-10-16T09:30:00Z" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRequestTranslationRejectsContractViolation(t *testing.T) {
	pub := &capturePublisher{}
	trigger, _ := rabbitmq.NewRabbitMQTranslationTrigger(pub, newRegistry(t), "")

	req := validRequest()
	req.TargetLangs = []string{"de"}
	err := trigger.RequestTranslation(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidTranslationRequest) {
		t.Fatalf("expected ErrInvalidTranslationRequest, got %v", err)
	}
	if pub.routingKey != "" {
		t.Error("invalid event must not be published")
	}
}

func TestRequestTranslationPublishError(t *testing.T) {
	broker := errors.New("channel closed")
	trigger, _ := rabbitmq.NewRabbitMQTranslationTrigger(&capturePublisher{err: broker}, nil, "custom.key")

	if err := trigger.RequestTranslation(context.Background(), validRequest()); !errors.Is(err, broker) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestNewTriggerRequiresProducer(t *testing.T) {
	if _, err := rabbitmq.NewRabbitMQTranslationTrigger(nil, nil, ""); err == nil {
		t.Fatal("expected error for nil producer")
	}
}

func TestNoopTrigger(t *testing.T) {
	if err := (rabbitmq.NoopTranslationTrigger{}).RequestTranslation(context.Background(), validRequest()); err != nil {
		t.Fatalf("noop trigger returned %v", err)
	}
}
