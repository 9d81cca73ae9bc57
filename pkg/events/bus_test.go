package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	ctx := context.Background()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(ctx, TopicQnAAnswered, func(_ context.Context, e Event) error {
		received <- e
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, TopicQnAAnswered, New(TypeQnA, map[string]interface{}{"session_id": "abc"})))

	select {
	case e := <-received:
		assert.Equal(t, TypeQnA, e.EventType())
		assert.Equal(t, "abc", e.Payload()["session_id"])
		assert.False(t, e.Timestamp().IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	require.NoError(t, bus.Close())
}

func TestHandlerErrorsAreReported(t *testing.T) {
	var mu sync.Mutex
	var reported []string
	done := make(chan struct{})

	bus := NewBus(nil, func(topic string, e Event, err error) {
		mu.Lock()
		reported = append(reported, topic+":"+e.EventType()+":"+err.Error())
		mu.Unlock()
		close(done)
	})
	ctx := context.Background()

	require.NoError(t, bus.Subscribe(ctx, TopicAudit, func(context.Context, Event) error {
		return errors.New("disk full")
	}))
	require.NoError(t, bus.Publish(ctx, TopicAudit, New(TypeEvaluation, nil)))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("error not reported")
	}
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"audit:evaluation:disk full"}, reported)
}

func TestNewDefaultsPayload(t *testing.T) {
	e := New(TypeTranscript, nil)
	assert.NotNil(t, e.Payload())
	assert.Equal(t, time.UTC, e.Timestamp().Location())
}
