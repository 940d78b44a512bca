// Package world drives a set of bodies through time. System is an ecs.System
// that integrates bodies once per tick and hands candidate pairs to the
// collision resolver; Simulation builds a System from configuration.
package world

import (
	"context"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/body"
	"github.com/opd-ai/go-rigid/pkg/collision"
	"github.com/opd-ai/go-rigid/pkg/event"
	"github.com/opd-ai/go-rigid/pkg/logging"
	"github.com/opd-ai/go-rigid/pkg/render"
)

type bodyEntry struct {
	basic ecs.BasicEntity
	name  string
	body  *body.MovingBody
}

type boundaryEntry struct {
	basic    ecs.BasicEntity
	name     string
	boundary *body.Boundary
}

// Collision records one resolution performed during a step.
type Collision struct {
	BodyA  uint64
	BodyB  uint64
	Result collision.Result
}

// StepReport summarises a single step.
type StepReport struct {
	Tick       uint64
	Time       float64
	Collisions []Collision
}

// System integrates moving bodies and resolves their collisions with each
// other and with static boundaries. Each body takes part in at most one
// resolution per tick; pairs are visited in insertion order.
type System struct {
	resolver *collision.Resolver
	gravity  mgl64.Vec2
	timeStep float64
	bus      *event.Bus
	logger   *logging.Logger
	ctx      context.Context

	bodies     []*bodyEntry
	boundaries []*boundaryEntry
	tick       uint64
	elapsed    float64
	mu         sync.RWMutex
}

// NewSystem creates a System. bus and logger may be nil.
func NewSystem(resolver *collision.Resolver, bus *event.Bus, logger *logging.Logger) *System {
	return &System{
		resolver: resolver,
		bus:      bus,
		logger:   logger,
		ctx:      context.Background(),
	}
}

// SetGravity sets the acceleration applied to every body each step.
func (s *System) SetGravity(gravity mgl64.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gravity = gravity
}

// SetTimeStep fixes the step taken by Update. ecs.World passes dt as a
// float32, so a configured step such as 0.05 would otherwise drift.
func (s *System) SetTimeStep(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeStep = dt
}

// SetContext sets the context whose run ID is attached to logs.
func (s *System) SetContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

// Add registers a moving body under the entity's ID.
func (s *System) Add(basic *ecs.BasicEntity, name string, b *body.MovingBody) {
	s.mu.Lock()
	s.bodies = append(s.bodies, &bodyEntry{basic: *basic, name: name, body: b})
	s.mu.Unlock()

	s.publish(event.NewBodyEvent(event.BodyAdded, s, basic.ID(), name))
}

// AddBoundary registers a static boundary.
func (s *System) AddBoundary(basic *ecs.BasicEntity, name string, b *body.Boundary) {
	s.mu.Lock()
	s.boundaries = append(s.boundaries, &boundaryEntry{basic: *basic, name: name, boundary: b})
	s.mu.Unlock()

	s.publish(event.NewBodyEvent(event.BodyAdded, s, basic.ID(), name))
}

// Remove satisfies the ecs.System interface
func (s *System) Remove(basic ecs.BasicEntity) {
	s.mu.Lock()
	name, removed := s.removeLocked(basic.ID())
	s.mu.Unlock()

	if removed {
		s.publish(event.NewBodyEvent(event.BodyRemoved, s, basic.ID(), name))
	}
}

func (s *System) removeLocked(id uint64) (string, bool) {
	for i, e := range s.bodies {
		if e.basic.ID() == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			return e.name, true
		}
	}
	for i, e := range s.boundaries {
		if e.basic.ID() == id {
			s.boundaries = append(s.boundaries[:i], s.boundaries[i+1:]...)
			return e.name, true
		}
	}
	return "", false
}

// Update satisfies the ecs.System interface. A time step set with
// SetTimeStep takes precedence over dt.
func (s *System) Update(dt float32) {
	s.mu.RLock()
	step := s.timeStep
	s.mu.RUnlock()
	if step <= 0 {
		step = float64(dt)
	}
	s.Step(step)
}

// Step advances the world by dt: gravity, body pairs, body-boundary pairs,
// then straight integration for every body that was not resolved.
func (s *System) Step(dt float64) StepReport {
	s.mu.Lock()
	s.tick++
	ctx := logging.WithTick(s.ctx, s.tick)
	report := StepReport{Tick: s.tick}

	for _, e := range s.bodies {
		e.body.Accelerate(s.gravity.Mul(dt))
	}

	done := make(map[uint64]bool, len(s.bodies))
	for i, a := range s.bodies {
		if done[a.basic.ID()] {
			continue
		}
		for _, b := range s.bodies[i+1:] {
			if done[b.basic.ID()] {
				continue
			}
			result := s.resolver.Resolve(a.body, b.body, dt)
			if !result.Moved() {
				continue
			}
			done[a.basic.ID()] = true
			done[b.basic.ID()] = true
			report.Collisions = append(report.Collisions, Collision{BodyA: a.basic.ID(), BodyB: b.basic.ID(), Result: result})
			s.logCollision(ctx, a.name, b.name, result)
			break
		}
	}

	for _, a := range s.bodies {
		if done[a.basic.ID()] {
			continue
		}
		for _, b := range s.boundaries {
			result := s.resolver.Resolve(a.body, b.boundary, dt)
			if !result.Moved() {
				continue
			}
			done[a.basic.ID()] = true
			report.Collisions = append(report.Collisions, Collision{BodyA: a.basic.ID(), BodyB: b.basic.ID(), Result: result})
			s.logCollision(ctx, a.name, b.name, result)
			break
		}
	}

	for _, e := range s.bodies {
		if done[e.basic.ID()] {
			e.body.UpdateRotation(dt)
		} else {
			e.body.Update(dt)
		}
	}

	s.elapsed += dt
	report.Time = s.elapsed
	s.mu.Unlock()

	for _, c := range report.Collisions {
		s.publish(collisionEvent(s, report.Tick, c))
	}
	s.publish(event.NewTickEvent(s, report.Tick, report.Time, len(report.Collisions)))

	return report
}

func (s *System) logCollision(ctx context.Context, nameA, nameB string, result collision.Result) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(ctx, "collision",
		"outcome", result.Outcome.String(),
		"body_a", nameA,
		"body_b", nameB,
		"impact_time", result.ImpactTime,
		"depth", result.Contact.Depth,
		"normal_x", result.Contact.Normal.X(),
		"normal_y", result.Contact.Normal.Y(),
	)
}

func collisionEvent(source interface{}, tick uint64, c Collision) *event.CollisionEvent {
	eventType := event.CollisionResolved
	if c.Result.Outcome == collision.Unconfirmed {
		eventType = event.CollisionUnconfirmed
	}
	e := event.NewCollisionEvent(eventType, source, c.BodyA, c.BodyB)
	e.Tick = tick
	e.ImpactTime = c.Result.ImpactTime
	e.Point = c.Result.Contact.PointA
	e.Normal = c.Result.Contact.Normal
	e.VelocityChange = c.Result.VelocityChange
	return e
}

func (s *System) publish(e event.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// Tick returns the number of completed steps.
func (s *System) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// Elapsed returns the simulated time so far.
func (s *System) Elapsed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsed
}

// Body returns the moving body registered under id.
func (s *System) Body(id uint64) (*body.MovingBody, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.bodies {
		if e.basic.ID() == id {
			return e.body, true
		}
	}
	return nil, false
}

// Len returns the number of moving bodies.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

// TotalMomentum returns the summed linear momentum of all moving bodies.
func (s *System) TotalMomentum() mgl64.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total mgl64.Vec2
	for _, e := range s.bodies {
		total = total.Add(e.body.LinearMomentum().Momentum())
	}
	return total
}

// KineticEnergy returns the summed kinetic energy of all moving bodies.
func (s *System) KineticEnergy() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, e := range s.bodies {
		total += e.body.KineticEnergy()
	}
	return total
}

// Draw renders the current state as one frame.
func (s *System) Draw(r render.Renderer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r.Clear()
	for _, e := range s.boundaries {
		r.RenderBoundary(e.name, e.boundary)
	}
	for _, e := range s.bodies {
		r.RenderBody(e.basic.ID(), e.name, e.body)
	}
	return r.Present()
}
