package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/application/ports"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/internal/infrastructure/queue"
)

type fakeChannel struct {
	exchanges []string
	bindings  []string
	published []amqp.Publishing
	keys      []string
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.exchanges = append(f.exchanges, name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	f.bindings = append(f.bindings, exchange+"->"+key+"->"+name)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestPublisher_DeclaraTopologiaYPublica(t *testing.T) {
	ch := &fakeChannel{}
	p, err := queue.NewPublisher(ch, "ex.pipeline")
	require.NoError(t, err)
	assert.Equal(t, []string{"ex.pipeline:topic"}, ch.exchanges)
	assert.Equal(t, []string{"ex.pipeline->lead.stage_changed->q.lead.stage_changed"}, ch.bindings)

	ev := ports.StageChangedEvent{
		LeadID: "L1", From: pipeline.StageNovo, To: pipeline.StageFechado,
		ChangedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishStageChanged(context.Background(), ev))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "lead.stage_changed", ch.keys[0])
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "NOVO", body["from"])
	assert.Equal(t, "FECHADO", body["to"])
	assert.True(t, p.Healthy())
}
