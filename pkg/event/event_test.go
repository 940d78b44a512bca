package event

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBusPublish_Handlers_RunInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe(TickCompleted, func(Event) { order = append(order, i) })
	}

	bus.Publish(NewTickEvent(nil, 1, 0.1, 0))

	// synchronous: every handler has run once Publish returns
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("handler order = %v, expected [1 2 3]", order)
	}
}

func TestBusPublish_Type_SelectsHandlers(t *testing.T) {
	tests := []struct {
		name      string
		published Event
		wantBody  int
		wantTick  int
	}{
		{name: "body event", published: NewBodyEvent(BodyAdded, nil, 1, "ball"), wantBody: 1},
		{name: "tick event", published: NewTickEvent(nil, 3, 0.15, 1), wantTick: 1},
		{name: "unsubscribed type", published: &BaseEvent{EventType: SimulationStopped}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewEventBus()
			body, tick := 0, 0
			bus.Subscribe(BodyAdded, func(Event) { body++ })
			bus.Subscribe(TickCompleted, func(Event) { tick++ })

			bus.Publish(tt.published)

			if body != tt.wantBody || tick != tt.wantTick {
				t.Errorf("body = %d, tick = %d, expected %d and %d", body, tick, tt.wantBody, tt.wantTick)
			}
		})
	}
}

func TestSubscriptionCancel_DuringPublish_CurrentDispatchUnaffected(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	var second *Subscription

	bus.Subscribe(CollisionResolved, func(Event) {
		calls = append(calls, "first")
		second.Cancel()
	})
	second = bus.Subscribe(CollisionResolved, func(Event) {
		calls = append(calls, "second")
	})

	bus.Publish(NewCollisionEvent(CollisionResolved, nil, 1, 2))
	if len(calls) != 2 || calls[1] != "second" {
		t.Fatalf("first dispatch calls = %v, expected [first second]", calls)
	}

	calls = nil
	bus.Publish(NewCollisionEvent(CollisionResolved, nil, 1, 2))
	if len(calls) != 1 || calls[0] != "first" {
		t.Errorf("second dispatch calls = %v, expected [first]", calls)
	}
}

func TestBusSubscribe_DuringPublish_JoinsNextDispatch(t *testing.T) {
	bus := NewEventBus()
	late := 0
	subscribed := false

	bus.Subscribe(TickCompleted, func(Event) {
		if !subscribed {
			subscribed = true
			bus.Subscribe(TickCompleted, func(Event) { late++ })
		}
	})

	bus.Publish(NewTickEvent(nil, 1, 0.1, 0))
	if late != 0 {
		t.Errorf("late handler ran %d times during the dispatch that added it", late)
	}
	bus.Publish(NewTickEvent(nil, 2, 0.2, 0))
	if late != 1 {
		t.Errorf("late handler ran %d times, expected 1", late)
	}
}

func TestSubscriptionCancel_Twice_OtherHandlersKept(t *testing.T) {
	bus := NewEventBus()
	kept := 0
	sub := bus.Subscribe(BodyRemoved, func(Event) { t.Error("cancelled handler called") })
	bus.Subscribe(BodyRemoved, func(Event) { kept++ })

	sub.Cancel()
	sub.Cancel()
	bus.Publish(NewBodyEvent(BodyRemoved, nil, 4, "crate"))

	if kept != 1 {
		t.Errorf("remaining handler ran %d times, expected 1", kept)
	}
}

func TestBusSubscribe_IDs_UniqueAcrossTypes(t *testing.T) {
	bus := NewEventBus()
	seen := make(map[uint64]bool)
	var last uint64
	for _, eventType := range []Type{BodyAdded, BodyAdded, TickCompleted, SimulationStarted} {
		sub := bus.Subscribe(eventType, func(Event) {})
		if sub.ID == 0 || seen[sub.ID] || sub.ID <= last {
			t.Fatalf("subscription ID %d is zero, repeated or not increasing", sub.ID)
		}
		seen[sub.ID] = true
		last = sub.ID
	}
}

func TestBus_ConcurrentPublishAndSubscribe_CountsEveryDelivery(t *testing.T) {
	bus := NewEventBus()
	var delivered int64
	bus.Subscribe(TickCompleted, func(Event) { atomic.AddInt64(&delivered, 1) })

	const publishers, perPublisher = 8, 100
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				bus.Publish(NewTickEvent(nil, uint64(j), 0, 0))
			}
		}()
		go func() {
			defer wg.Done()
			sub := bus.Subscribe(BodyAdded, func(Event) {})
			sub.Cancel()
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt64(&delivered); got != publishers*perPublisher {
		t.Errorf("delivered = %d, expected %d", got, publishers*perPublisher)
	}
}

func TestCollisionEvent_Delivered_FieldsIntact(t *testing.T) {
	bus := NewEventBus()
	var got *CollisionEvent
	bus.Subscribe(CollisionResolved, func(e Event) {
		got, _ = e.(*CollisionEvent)
	})

	sent := NewCollisionEvent(CollisionResolved, "world", 3, 9)
	sent.Tick = 12
	sent.ImpactTime = 0.0375
	sent.Point = mgl64.Vec2{1, 0.5}
	sent.Normal = mgl64.Vec2{0, 1}
	sent.VelocityChange = mgl64.Vec2{0, 4}
	bus.Publish(sent)

	if got == nil {
		t.Fatal("handler did not receive a *CollisionEvent")
	}
	if got.BodyA != 3 || got.BodyB != 9 || got.Tick != 12 || got.ImpactTime != 0.0375 {
		t.Errorf("ids/tick/time = %d %d %d %v, expected 3 9 12 0.0375", got.BodyA, got.BodyB, got.Tick, got.ImpactTime)
	}
	if got.Point != sent.Point || got.Normal != sent.Normal || got.VelocityChange != sent.VelocityChange {
		t.Errorf("geometry = %v %v %v", got.Point, got.Normal, got.VelocityChange)
	}
	if got.GetSource() != "world" {
		t.Errorf("GetSource() = %v, expected world", got.GetSource())
	}
}

func TestNewTickEvent_Type_AlwaysTickCompleted(t *testing.T) {
	e := NewTickEvent(nil, 40, 2.0, 3)
	if e.GetType() != TickCompleted {
		t.Errorf("GetType() = %v, expected %v", e.GetType(), TickCompleted)
	}
	if e.Tick != 40 || e.Time != 2.0 || e.Collisions != 3 {
		t.Errorf("TickEvent = %+v", e)
	}
}

func TestNewBodyEvent_Fields(t *testing.T) {
	e := NewBodyEvent(BodyRemoved, nil, 17, "left wall")
	if e.GetType() != BodyRemoved || e.BodyID != 17 || e.Name != "left wall" {
		t.Errorf("BodyEvent = %+v", e)
	}
}
