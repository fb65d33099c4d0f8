package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Concesionarios-api/internal/application/usecase"
	"github.com/jhoicas/Concesionarios-api/internal/domain/entity"
)

// Nombres en el broker. Los consumidores declaran sus propias colas y se
// atan a estas routing keys.
const (
	exchangeName      = "dealerships"
	RoutingKeyCreated = "dealership.created"
	RoutingKeyUpdated = "dealership.updated"
)

var _ usecase.EventPublisher = (*AMQPPublisher)(nil)

// AMQPPublisher publica los eventos de ciclo de vida en RabbitMQ.
// Mensajes JSON persistentes sobre un exchange direct durable; la entrega
// aguas abajo (reintentos, DLQ) es asunto de los consumidores.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// envelope sobre común de todos los eventos publicados.
type envelope struct {
	EventID    string `json:"event_id"`
	Event      string `json:"event"`
	OccurredAt string `json:"occurred_at"`
	Data       any    `json:"data"`
}

type dealershipPayload struct {
	Dealership *entity.Dealership `json:"dealership"`
}

type dealershipDiffPayload struct {
	Before *entity.Dealership `json:"before"`
	After  *entity.Dealership `json:"after"`
}

// NewAMQPPublisher conecta al broker y declara el exchange.
func NewAMQPPublisher(amqpURL string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declarar exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

// PublishDealershipCreated publica el agregado recién creado.
func (p *AMQPPublisher) PublishDealershipCreated(ctx context.Context, d *entity.Dealership) error {
	return p.publish(ctx, RoutingKeyCreated, "DealershipCreated", dealershipPayload{Dealership: d})
}

// PublishDealershipUpdated publica ambos snapshots para que los
// suscriptores puedan calcular el diff.
func (p *AMQPPublisher) PublishDealershipUpdated(ctx context.Context, before, after *entity.Dealership) error {
	return p.publish(ctx, RoutingKeyUpdated, "DealershipUpdated", dealershipDiffPayload{Before: before, After: after})
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey, event string, data any) error {
	body, err := json.Marshal(envelope{
		EventID:    uuid.New().String(),
		Event:      event,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	return p.channel.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() {
	p.channel.Close()
	p.conn.Close()
}
