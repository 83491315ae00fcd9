// Package events публикует события заказов в Kafka.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"pickpoint/internal/domain"
)

// Event конверт события заказа
type Event struct {
	EventID   string       `json:"event_id"`
	Type      string       `json:"type"`
	OrderID   string       `json:"order_id"`
	CreatedAt time.Time    `json:"created_at"`
	Order     domain.Order `json:"order"`
}

// Writer подмножество kafka.Writer
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Brokers разбирает список брокеров через запятую
func Brokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// Publisher пишет события с ключом order id, чтобы события одного заказа шли в одну партицию.
// Ошибка записи только логируется.
type Publisher struct {
	w       Writer
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewPublisher(w Writer, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{w: w, log: log, timeout: 5 * time.Second, now: time.Now}
}

func (p *Publisher) OrderEvent(ctx context.Context, kind string, o domain.Order) {
	ev := Event{
		EventID:   uuid.NewString(),
		Type:      kind,
		OrderID:   o.ID,
		CreatedAt: p.now().UTC(),
		Order:     o,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("encode order event", zap.String("type", kind), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	msg := kafka.Message{Key: []byte(o.ID), Value: data, Time: ev.CreatedAt}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("publish order event",
			zap.String("type", kind),
			zap.String("order_id", o.ID),
			zap.Error(err))
	}
}

func (p *Publisher) Close() error { return p.w.Close() }
