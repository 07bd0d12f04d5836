package publisher

import (
	"context"
	"testing"
	"time"

	r "github.com/fadiboulbina/invento-noir-connect/internal/repository"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	events    []*r.OutboxEvent
	fetchErr  error
	markErr   error
	processed []int
}

func (m *mockSource) GetUnprocessedEvents(context.Context, int) ([]*r.OutboxEvent, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if len(m.events) > 0 {
		ev := []*r.OutboxEvent{m.events[0]} // Return first event once
		m.events = m.events[1:]
		return ev, nil
	}
	return nil, nil
}

func (m *mockSource) MarkEventAsProcessed(_ context.Context, id int) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.processed = append(m.processed, id)
	return nil
}

type mockWriter struct {
	messages []kafka.Message
	err      error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func testEvent(id int) *r.OutboxEvent {
	return &r.OutboxEvent{
		ID:          id,
		AggregateId: "ORD-1700000000000",
		EventType:   "order-submitted",
		Payload:     []byte(`{"order_id":"ORD-1700000000000","total_amount":45500}`),
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	source := &mockSource{events: []*r.OutboxEvent{testEvent(1)}}
	writer := &mockWriter{}
	poller := &OutboxPoller{tick: time.Second, source: source, writer: writer}

	poller.processUnpublishedEvents(context.Background())

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte("ORD-1700000000000"), msg.Key)
	assert.Contains(t, string(msg.Value), "45500")
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("order-submitted"), msg.Headers[0].Value)

	assert.Equal(t, []int{1}, source.processed)
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEventUnmarked(t *testing.T) {
	source := &mockSource{events: []*r.OutboxEvent{testEvent(1)}}
	writer := &mockWriter{err: assert.AnError}
	poller := &OutboxPoller{tick: time.Second, source: source, writer: writer}

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, source.processed)
}

func TestProcessUnpublishedEvents_FetchFailureIsQuiet(t *testing.T) {
	source := &mockSource{fetchErr: assert.AnError}
	writer := &mockWriter{}
	poller := &OutboxPoller{tick: time.Second, source: source, writer: writer}

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, writer.messages)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	source := &mockSource{}
	writer := &mockWriter{}
	poller := &OutboxPoller{tick: 10 * time.Millisecond, source: source, writer: writer}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
