package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventHandler processes one event delivered to a subscription.
type EventHandler func(ctx context.Context, event Event) error

// ErrorFunc is told about events a handler failed to process.
type ErrorFunc func(topic string, event Event, err error)

// Bus carries domain events between services inside the process.
type Bus struct {
	pubSub  *gochannel.GoChannel
	onError ErrorFunc
	wg      sync.WaitGroup
}

func NewBus(logger watermill.LoggerAdapter, onError ErrorFunc) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if onError == nil {
		onError = func(string, Event, error) {}
	}
	return &Bus{
		pubSub:  gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
		onError: onError,
	}
}

// Publish sends an event to every subscriber of topic.
func (b *Bus) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(BaseEvent{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("type", event.EventType())
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", topic, err)
	}
	return nil
}

// Subscribe runs handler for every event on topic until ctx is cancelled or
// the bus is closed. Failed events are reported and acknowledged, never
// redelivered.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler EventHandler) error {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			b.process(ctx, topic, msg, handler)
		}
	}()
	return nil
}

func (b *Bus) process(ctx context.Context, topic string, msg *message.Message, handler EventHandler) {
	defer msg.Ack()

	var event BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		b.onError(topic, BaseEvent{Type: msg.Metadata.Get("type")}, fmt.Errorf("decode event: %w", err))
		return
	}
	if err := handler(ctx, event); err != nil {
		b.onError(topic, event, err)
	}
}

// Close stops all subscriptions and waits for in-flight handlers to return.
func (b *Bus) Close() error {
	err := b.pubSub.Close()
	b.wg.Wait()
	return err
}
