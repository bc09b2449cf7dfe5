package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New(), []order.Item{
		{ProductID: uuid.New(), Quantity: 2, Price: decimal.NewFromInt(25)},
	}, decimal.NewFromInt(50), "", "")
	require.NoError(t, err)
	return o
}

func TestKafkaPublisher_Handle(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, "dotmart", zap.NewNop())

	o := placedOrder(t)
	evt := o.GetDomainEvents()[0]
	require.NoError(t, p.Handle(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "dotmart.order", msg.Topic)
	assert.Equal(t, o.ID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, order.EventTypeOrderPlaced, string(msg.Headers[0].Value))

	env, err := Decode(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID(), env.ID)
	assert.Equal(t, order.EventTypeOrderPlaced, env.Type)
	assert.Equal(t, o.ID, env.AggregateID)
	assert.Contains(t, string(env.Payload), `"itemCount":2`)
	assert.Contains(t, string(env.Payload), `"totalAmount":"50"`)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewKafkaPublisher(w, "dotmart", nil)

	err := p.Handle(context.Background(), placedOrder(t).GetDomainEvents()[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order.placed")
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaPublisher_Topic(t *testing.T) {
	assert.Equal(t, "dotmart.cart", NewKafkaPublisher(nil, "dotmart", nil).Topic("Cart"))
	assert.Equal(t, "product", NewKafkaPublisher(nil, "", nil).Topic("Product"))
}

func TestKafkaPublisher_ReceivesAllEventsFromBus(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, "dotmart", nil)
	assert.Empty(t, p.EventTypes())

	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(p)

	o := placedOrder(t)
	require.NoError(t, o.ChangeStatus(order.StatusShipped))
	require.NoError(t, bus.Publish(context.Background(), o.PullDomainEvents()...))

	assert.Len(t, w.msgs, 2)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{Brokers: []string{"k1:9092", "k2:9092"}})
	require.NotNil(t, w.Addr)
	assert.Equal(t, "tcp,tcp", w.Addr.Network())
	assert.Equal(t, "k1:9092,k2:9092", w.Addr.String())
	assert.Empty(t, w.Topic)
	assert.True(t, w.AllowAutoTopicCreation)
}

func TestNewKafkaWriter_SingleBroker(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{Brokers: []string{"k1:9092"}})
	require.NotNil(t, w.Addr)
	assert.Equal(t, "tcp", w.Addr.Network())
	assert.Equal(t, "k1:9092", w.Addr.String())
}

func TestDecode_RejectsUntypedEnvelope(t *testing.T) {
	_, err := Decode([]byte(`{"id":"` + uuid.NewString() + `"}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)
