package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pickpoint/internal/domain"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, Brokers(" a:9092, ,b:9092 "))
	assert.Empty(t, Brokers(""))
}

func TestPublisher_OrderEvent(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, nil)
	o := domain.Order{ID: "o-1", Barcode: "8B0000001", Status: domain.OrderStatusIssued}

	p.OrderEvent(context.Background(), "order.issued", o)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "o-1", string(w.msgs[0].Key))
	var ev Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "order.issued", ev.Type)
	assert.Equal(t, "o-1", ev.OrderID)
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, domain.OrderStatusIssued, ev.Order.Status)
}

func TestPublisher_WriteErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := NewPublisher(&fakeWriter{err: errors.New("broker down")}, zap.New(core))

	p.OrderEvent(context.Background(), "order.created", domain.Order{ID: "o-2"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "publish order event", logs.All()[0].Message)
}
