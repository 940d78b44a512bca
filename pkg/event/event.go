// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	BodyAdded            Type = "body_added"
	BodyRemoved          Type = "body_removed"
	CollisionResolved    Type = "collision_resolved"
	CollisionUnconfirmed Type = "collision_unconfirmed"
	TickCompleted        Type = "tick_completed"
	SimulationStarted    Type = "simulation_started"
	SimulationStopped    Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so a Publish iterating the old slice is unaffected
			remaining := make([]subscriber, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			b.handlers[eventType] = append(remaining, subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// BodyEvent reports a body entering or leaving a simulation
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Name   string
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64, name string) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Name:   name,
	}
}

// CollisionEvent contains information about a pairwise resolution
type CollisionEvent struct {
	BaseEvent
	BodyA          uint64
	BodyB          uint64
	Tick           uint64
	ImpactTime     float64
	Point          mgl64.Vec2
	Normal         mgl64.Vec2
	VelocityChange mgl64.Vec2
}

// NewCollisionEvent creates a new collision event. Use CollisionUnconfirmed
// for impacts predicted but not confirmed by a contact.
func NewCollisionEvent(eventType Type, source interface{}, bodyA, bodyB uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyA: bodyA,
		BodyB: bodyB,
	}
}

// TickEvent is published after every simulation step
type TickEvent struct {
	BaseEvent
	Tick       uint64
	Time       float64
	Collisions int
}

// NewTickEvent creates a new tick event
func NewTickEvent(source interface{}, tick uint64, time float64, collisions int) *TickEvent {
	return &TickEvent{
		BaseEvent: BaseEvent{
			EventType: TickCompleted,
			Source:    source,
		},
		Tick:       tick,
		Time:       time,
		Collisions: collisions,
	}
}
