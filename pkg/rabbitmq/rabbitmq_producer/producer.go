package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"listing-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelSource выдаёт каналы из общего соединения (ConnectionManager)
type ChannelSource interface {
	GetChannel() (*amqp.Connection, *amqp.Channel, error)
}

// PublisherConfig конфигурация для производителя
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName       string     // Имя обменника для публикации
	ExchangeType       string     // Тип обменника (direct, fanout, topic, headers)
	DurableExchange    bool       // Долговечность обменника
	AutoDeleteExchange bool       // Автоудаление обменника
	InternalExchange   bool       // Внутренний ли обменник
	ExchangeArgs       amqp.Table // Дополнительные аргументы для обменника

	// Если false, производитель полагается на то, что обменник уже существует
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if c.DeclareExchangeIfMissing && c.ExchangeName == "" && c.ExchangeType != "" {
		return fmt.Errorf("producer: exchange name is required if ExchangeType is specified and DeclareExchangeIfMissing is true")
	}
	if c.DeclareExchangeIfMissing && c.ExchangeType == "" && c.ExchangeName != "" {
		return fmt.Errorf("producer: exchange type is required if ExchangeName is specified and DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher структура для управления производителем
type Publisher struct {
	config  PublisherConfig
	source  ChannelSource
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	Logger rabbitmq_common.Logger
}

// NewPublisher создает нового производителя
func NewPublisher(cfg PublisherConfig, source ChannelSource) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		config: cfg,
		source: source,
		Logger: logger,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.openChannelLocked(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Successfully connected and channel opened")
	return p, nil
}

// openChannelLocked берёт новый канал у менеджера и объявляет обменник
func (p *Publisher) openChannelLocked() error {
	conn, ch, err := p.source.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange",
			"name", p.config.ExchangeName,
			"type", p.config.ExchangeType,
		)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			p.config.InternalExchange,
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	} else if p.config.ExchangeName != "" {
		p.Logger.Debug("Assuming exchange already exists", "name", p.config.ExchangeName)
	}

	p.conn = conn
	p.channel = ch
	return nil
}

// Publish публикует сообщение. Закрытый канал переоткрывается один раз.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() || p.conn == nil || p.conn.IsClosed() {
		p.Logger.Warn("Producer: channel is closed, reopening", "exchange", p.config.ExchangeName)
		if err := p.openChannelLocked(); err != nil {
			return fmt.Errorf("producer: not connected: %w", err)
		}
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName, // пустая строка для default exchange
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// PublishJSON публикует персистентное JSON-сообщение
func (p *Publisher) PublishJSON(ctx context.Context, routingKey, messageID string, body []byte, headers amqp.Table) error {
	return p.Publish(ctx, routingKey, NewJSONMessage(messageID, body, headers, time.Now()))
}

// NewJSONMessage собирает amqp.Publishing для JSON-тела
func NewJSONMessage(messageID string, body []byte, headers amqp.Table, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    now.UTC(),
		Headers:      headers,
		Body:         body,
	}
}

// Close закрывает канал производителя. Соединение принадлежит менеджеру.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Logger.Debug("Producer: Closing...")
	var firstErr error
	if p.channel != nil && !p.channel.IsClosed() {
		if err := p.channel.Close(); err != nil {
			p.Logger.Error(err, "Error closing channel")
			firstErr = err
		}
	}
	p.channel = nil
	p.conn = nil
	p.Logger.Info("Producer closed.")
	return firstErr
}
