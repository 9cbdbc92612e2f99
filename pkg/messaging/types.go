package messaging

import (
	"github.com/boristopalov/gambit/pkg/core"
)

// Handler receives events from a broker
type Handler interface {
	Handle(ev core.Event) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ev core.Event) error

func (f HandlerFunc) Handle(ev core.Event) error {
	return f(ev)
}

// Broker routes events to subscribers
type Broker interface {
	core.Publisher
	// Subscribe registers a handler under an ID
	Subscribe(subscriberID string, h Handler) error
	// Unsubscribe removes a subscription
	Unsubscribe(subscriberID string) error
}
