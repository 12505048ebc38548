package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/notify"

	"github.com/rabbitmq/amqp091-go"
)

// channel es la parte de *amqp091.Channel que usamos.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher publica en un exchange topic durable. Implementa notify.Publisher.
type Publisher struct {
	exchange string
	log      logger.Logger

	mu       sync.Mutex
	conn     *amqp091.Connection
	ch       channel
	reopen   func() (channel, error)
	declared bool
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("rabbitmq: url scheme must be amqp:// or amqps://")
	}
	return clean, nil
}

// NewPublisher conecta con timeout acotado para no colgar el arranque.
func NewPublisher(amqpURL, exchange string, log logger.Logger) (*Publisher, error) {
	clean, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(exchange) == "" {
		return nil, errors.New("rabbitmq: exchange required")
	}

	conn, err := amqp091.DialConfig(clean, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel: %w", err)
	}

	p := newPublisher(ch, exchange, log)
	p.conn = conn
	p.reopen = func() (channel, error) { return conn.Channel() }
	return p, nil
}

func newPublisher(ch channel, exchange string, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Publisher{
		exchange: exchange,
		ch:       ch,
		log:      log.With(map[string]any{"component": "rabbitmq_publisher", "exchange": exchange}),
	}
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, ev notify.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.publishLocked(ctx, routingKey, ev, body)
	if err == nil {
		return nil
	}

	// Un solo reintento con canal nuevo: un canal cerrado por el broker no se recupera solo.
	if p.reopen == nil {
		return err
	}
	p.log.Warn("publish failed; reopening channel", map[string]any{"routing_key": routingKey, "error": err})
	ch, chErr := p.reopen()
	if chErr != nil {
		return fmt.Errorf("rabbitmq: reopen channel: %w", chErr)
	}
	p.ch = ch
	p.declared = false
	return p.publishLocked(ctx, routingKey, ev, body)
}

func (p *Publisher) publishLocked(ctx context.Context, routingKey string, ev notify.Event, body []byte) error {
	if !p.declared {
		if err := p.ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq: declare exchange: %w", err)
		}
		p.declared = true
	}

	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
