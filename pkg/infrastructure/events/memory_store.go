package events

import (
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

type subscription struct {
	id      int
	types   map[string]bool
	handler EventHandler
}

// InMemoryEventStore keeps events per stream and in global append order.
// Subscribers are notified synchronously after the append completes, so a
// handler may read from the store.
type InMemoryEventStore struct {
	mutex         sync.RWMutex
	streams       map[string][]Event
	allEvents     []Event
	subscriptions []subscription
	nextID        int
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:   make(map[string][]Event),
		allEvents: make([]Event, 0),
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	if streamID == "" {
		return fmt.Errorf("stream id cannot be empty")
	}

	s.mutex.Lock()
	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	handlers := s.handlersFor(eventWithVersion.EventType)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if err := handler.Handle(eventWithVersion); err != nil {
			klog.ErrorS(err, "Event handler failed", "type", eventWithVersion.EventType, "stream", streamID)
		}
	}

	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

// Subscribe registers a handler for the given event types and returns an id
// for Unsubscribe
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) (int, error) {
	if handler == nil {
		return 0, fmt.Errorf("handler cannot be nil")
	}
	if len(eventTypes) == 0 {
		return 0, fmt.Errorf("at least one event type is required")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextID++
	types := make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		types[eventType] = true
	}
	s.subscriptions = append(s.subscriptions, subscription{id: s.nextID, types: types, handler: handler})

	return s.nextID, nil
}

func (s *InMemoryEventStore) Unsubscribe(subscriptionID int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, sub := range s.subscriptions {
		if sub.id == subscriptionID {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("subscription not found: %d", subscriptionID)
}

// handlersFor must be called with the mutex held
func (s *InMemoryEventStore) handlersFor(eventType string) []EventHandler {
	var handlers []EventHandler
	for _, sub := range s.subscriptions {
		if sub.types[eventType] && sub.handler.CanHandle(eventType) {
			handlers = append(handlers, sub.handler)
		}
	}
	return handlers
}
