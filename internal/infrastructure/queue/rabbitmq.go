// Package queue publica eventos del funil en RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/flowboard-api/internal/application/ports"
)

// Topología del exchange de eventos del funil.
const (
	RoutingKeyStageChanged = "lead.stage_changed"
	QueueStageChanged      = "q.lead.stage_changed"
)

// Channel subconjunto de *amqp.Channel usado por el publicador.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher publica lead.stage_changed como JSON persistente.
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex // un canal AMQP no admite publicaciones concurrentes
	ch       Channel
	exchange string
}

// Dial abre conexión y canal y declara la topología.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	p, err := NewPublisher(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher usa un canal ya abierto y declara exchange, cola y binding.
func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	if _, err := ch.QueueDeclare(QueueStageChanged, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declarar cola: %w", err)
	}
	if err := ch.QueueBind(QueueStageChanged, RoutingKeyStageChanged, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind cola: %w", err)
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

// PublishStageChanged serializa y publica el evento.
func (p *Publisher) PublishStageChanged(ctx context.Context, ev ports.StageChangedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyStageChanged, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.LeadID + ":" + ev.ChangedAt.UTC().Format("20060102T150405.000000000"),
		Timestamp:    ev.ChangedAt,
		Type:         RoutingKeyStageChanged,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar en RabbitMQ: %w", err)
	}
	return nil
}

// Healthy indica si la conexión sigue abierta.
func (p *Publisher) Healthy() bool {
	return p.conn == nil || !p.conn.IsClosed()
}

// Close cierra canal y conexión.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil && p.conn == nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher se usa cuando AMQP_URL está vacío.
type NoopPublisher struct{}

func (NoopPublisher) PublishStageChanged(context.Context, ports.StageChangedEvent) error { return nil }
