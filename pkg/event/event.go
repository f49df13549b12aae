// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-celestial/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation lifecycle and control events
const (
	SimulationStarted   Type = "simulation_started"
	SimulationStep      Type = "simulation_step"
	SimulationFinished  Type = "simulation_finished"
	SimulationCancelled Type = "simulation_cancelled"
	PlanetChanged       Type = "planet_changed"
	ParameterChanged    Type = "parameter_changed"
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

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// HandlerCount returns the number of handlers registered for a type.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine, in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// RunEvent marks the start or cancellation of a simulation run
type RunEvent struct {
	BaseEvent
	RunID  string
	Params physics.Parameters
}

// NewRunEvent creates a new run event
func NewRunEvent(eventType Type, source interface{}, runID string, params physics.Parameters) *RunEvent {
	return &RunEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		RunID:     runID,
		Params:    params,
	}
}

// StepEvent carries one integrator state of a run
type StepEvent struct {
	BaseEvent
	RunID string
	State physics.State
}

// NewStepEvent creates a new step event
func NewStepEvent(source interface{}, runID string, state physics.State) *StepEvent {
	return &StepEvent{
		BaseEvent: BaseEvent{EventType: SimulationStep, Source: source},
		RunID:     runID,
		State:     state,
	}
}

// FinishedEvent reports the outcome of a settled run
type FinishedEvent struct {
	BaseEvent
	RunID    string
	Planet   string
	Distance float64
	Steps    int
}

// NewFinishedEvent creates a new finished event
func NewFinishedEvent(source interface{}, runID, planet string, distance float64, steps int) *FinishedEvent {
	return &FinishedEvent{
		BaseEvent: BaseEvent{EventType: SimulationFinished, Source: source},
		RunID:     runID,
		Planet:    planet,
		Distance:  distance,
		Steps:     steps,
	}
}

// PlanetEvent reports a planet menu change
type PlanetEvent struct {
	BaseEvent
	Planet  string
	Gravity float64
}

// NewPlanetEvent creates a new planet event
func NewPlanetEvent(source interface{}, planet string, gravity float64) *PlanetEvent {
	return &PlanetEvent{
		BaseEvent: BaseEvent{EventType: PlanetChanged, Source: source},
		Planet:    planet,
		Gravity:   gravity,
	}
}

// ParameterEvent reports a slider change
type ParameterEvent struct {
	BaseEvent
	Name  string
	Value float64
}

// NewParameterEvent creates a new parameter event
func NewParameterEvent(source interface{}, name string, value float64) *ParameterEvent {
	return &ParameterEvent{
		BaseEvent: BaseEvent{EventType: ParameterChanged, Source: source},
		Name:      name,
		Value:     value,
	}
}
