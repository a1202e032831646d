// Package event lets the session announce graph changes without depending
// on the packages that react to them.
package event

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type EventType int

const (
	PostAdded EventType = iota
	ScoreChanged
	GraphOpened
	GraphSaved
	SettingsChanged
	AuthorSelected
)

func (t EventType) String() string {
	switch t {
	case PostAdded:
		return "post_added"
	case ScoreChanged:
		return "score_changed"
	case GraphOpened:
		return "graph_opened"
	case GraphSaved:
		return "graph_saved"
	case SettingsChanged:
		return "settings_changed"
	case AuthorSelected:
		return "author_selected"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

type Event struct {
	Type EventType
	Data interface{}
}

type EventHandler func(Event) error

// EventManager dispatches events to subscribers synchronously, in
// subscription order, on the publishing goroutine.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
}

func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
	}
}

func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish runs every handler subscribed to the event type. All handlers run
// even when some fail; their errors and recovered panics are combined.
func (em *EventManager) Publish(e Event) error {
	em.mu.RLock()
	handlers := append([]EventHandler(nil), em.subscribers[e.Type]...)
	em.mu.RUnlock()

	var result error
	for _, h := range handlers {
		if err := call(h, e); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

func call(h EventHandler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s handler: %v", e.Type, r)
		}
	}()
	return h(e)
}
