// pkg/world/simulation.go
package world

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-rigid/pkg/collision"
	"github.com/opd-ai/go-rigid/pkg/config"
	"github.com/opd-ai/go-rigid/pkg/event"
	"github.com/opd-ai/go-rigid/pkg/geometry"
	"github.com/opd-ai/go-rigid/pkg/logging"
	"github.com/opd-ai/go-rigid/pkg/render"
)

// Simulation owns an ECS world populated from a SimulationConfig
type Simulation struct {
	Config   *config.SimulationConfig
	World    *ecs.World
	System   *System
	EventBus *event.Bus
	Running  bool

	logger   *logging.Logger
	ctx      context.Context
	entities map[string]ecs.BasicEntity
}

// NewSimulation builds every configured body and boundary and registers them
// with a fresh System. The config is validated first.
func NewSimulation(cfg *config.SimulationConfig, logger *logging.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	geom := &geometry.Box2D{
		Horizon:         cfg.TOIHorizon,
		HalfPlaneExtent: cfg.HalfPlaneExtent,
	}
	bus := event.NewEventBus()
	system := NewSystem(collision.NewResolver(geom, cfg.PredictionMargin), bus, logger)
	system.SetGravity(cfg.Gravity)
	system.SetTimeStep(cfg.TimeStep)

	sim := &Simulation{
		Config:   cfg,
		World:    &ecs.World{},
		System:   system,
		EventBus: bus,
		logger:   logger,
		ctx:      context.Background(),
		entities: make(map[string]ecs.BasicEntity),
	}
	sim.World.AddSystem(system)

	for _, bc := range cfg.Boundaries {
		b, err := bc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create simulation: %w", err)
		}
		basic := ecs.NewBasic()
		system.AddBoundary(&basic, bc.Name, b)
		sim.entities[bc.Name] = basic
	}
	for _, bc := range cfg.Bodies {
		b, err := bc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create simulation: %w", err)
		}
		basic := ecs.NewBasic()
		system.Add(&basic, bc.Name, b)
		sim.entities[bc.Name] = basic
	}

	return sim, nil
}

// Entity returns the entity created for the named body or boundary.
func (s *Simulation) Entity(name string) (ecs.BasicEntity, bool) {
	e, ok := s.entities[name]
	return e, ok
}

// RemoveEntity removes the named body or boundary from the world.
func (s *Simulation) RemoveEntity(name string) bool {
	e, ok := s.entities[name]
	if !ok {
		return false
	}
	s.World.RemoveEntity(e)
	delete(s.entities, name)
	return true
}

// Start marks the simulation as running and announces it.
func (s *Simulation) Start(ctx context.Context) {
	s.ctx = ctx
	s.System.SetContext(ctx)
	s.Running = true
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: s})
	if s.logger != nil {
		s.logger.Info(ctx, "Simulation started",
			"bodies", s.System.Len(),
			"time_step", s.Config.TimeStep,
		)
	}
}

// Stop halts the simulation and announces it.
func (s *Simulation) Stop() {
	if !s.Running {
		return
	}
	s.Running = false
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStopped, Source: s})
	if s.logger != nil {
		s.logger.Info(s.ctx, "Simulation stopped",
			"ticks", s.System.Tick(),
			"elapsed", s.System.Elapsed(),
		)
	}
}

// Step advances every system in the world by one configured time step. The
// System uses the float64 step from the config rather than the float32 value
// ecs.World.Update carries.
func (s *Simulation) Step() {
	s.World.Update(float32(s.Config.TimeStep))
}

// Run starts the simulation and steps it until the configured step count is
// reached or ctx is cancelled. When r is non-nil a frame is drawn before the
// first step and then every `every` steps.
func (s *Simulation) Run(ctx context.Context, r render.Renderer, every int) error {
	s.Start(ctx)
	defer s.Stop()

	if every < 1 {
		every = 1
	}
	if r != nil {
		if err := s.draw(ctx, r); err != nil {
			return err
		}
	}

	for i := 0; i < s.Config.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
		if r != nil && (i+1)%every == 0 {
			if err := s.draw(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

// contextSetter is implemented by renderers that log, such as render.LogRenderer.
type contextSetter interface {
	SetContext(ctx context.Context)
}

func (s *Simulation) draw(ctx context.Context, r render.Renderer) error {
	tick := s.System.Tick()
	if cs, ok := r.(contextSetter); ok {
		cs.SetContext(logging.WithTick(ctx, tick))
	}
	if err := s.System.Draw(r); err != nil {
		return logging.WrapError(err, "failed to draw frame at tick %d", tick)
	}
	return nil
}
