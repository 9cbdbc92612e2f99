package messaging

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/boristopalov/gambit/pkg/core"
)

// SimpleBroker implements the Broker interface.
// Delivery is synchronous and in subscription order, so every subscriber
// sees events in the order they were published.
type SimpleBroker struct {
	order       []string
	subscribers map[string]Handler
	mu          sync.RWMutex
}

// NewBroker creates a new event broker
func NewBroker() *SimpleBroker {
	return &SimpleBroker{
		subscribers: make(map[string]Handler),
	}
}

// Publish hands the event to every subscriber. A failing subscriber does
// not stop delivery to the others; all errors are joined. Handlers run
// without the broker lock held, so they may subscribe or unsubscribe.
func (b *SimpleBroker) Publish(ev core.Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	type target struct {
		id string
		h  Handler
	}
	b.mu.RLock()
	targets := make([]target, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, target{id: id, h: b.subscribers[id]})
	}
	b.mu.RUnlock()

	var errs []error
	for _, sub := range targets {
		if err := sub.h.Handle(ev); err != nil {
			errs = append(errs, fmt.Errorf("subscriber %s: %w", sub.id, err))
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler to receive events
func (b *SimpleBroker) Subscribe(subscriberID string, h Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h == nil {
		return fmt.Errorf("subscriber %s has no handler", subscriberID)
	}
	if _, exists := b.subscribers[subscriberID]; exists {
		return fmt.Errorf("subscriber %s is already subscribed", subscriberID)
	}

	b.subscribers[subscriberID] = h
	b.order = append(b.order, subscriberID)
	return nil
}

// Unsubscribe removes a subscription
func (b *SimpleBroker) Unsubscribe(subscriberID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[subscriberID]; !exists {
		return fmt.Errorf("subscriber %s is not subscribed", subscriberID)
	}

	delete(b.subscribers, subscriberID)
	for i, id := range b.order {
		if id == subscriberID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

func (b *SimpleBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]Handler)
	b.order = nil
}

// Discard is a Publisher that drops every event
type Discard struct{}

func (Discard) Publish(core.Event) error { return nil }
