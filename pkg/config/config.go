// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-rigid/pkg/body"
	"github.com/opd-ai/go-rigid/pkg/physics"
	"github.com/opd-ai/go-rigid/pkg/shape"
)

// SimulationConfig contains configuration for a simulation run
type SimulationConfig struct {
	TimeStep         float64          `json:"timeStep"`
	Steps            int              `json:"steps"`
	Gravity          mgl64.Vec2       `json:"gravity"`
	PredictionMargin float64          `json:"predictionMargin"`
	TOIHorizon       float64          `json:"toiHorizon"`
	HalfPlaneExtent  float64          `json:"halfPlaneExtent"`
	Log              LogConfig        `json:"log"`
	Render           RenderConfig     `json:"render"`
	Bodies           []BodyConfig     `json:"bodies"`
	Boundaries       []BoundaryConfig `json:"boundaries"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// RenderConfig contains terminal rendering configuration
type RenderConfig struct {
	Enabled bool    `json:"enabled"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Scale   float64 `json:"scale"`
	Every   int     `json:"every"`
}

// ShapeConfig describes a shape by kind name and parameters
type ShapeConfig struct {
	Kind        string     `json:"kind"`
	Radius      float64    `json:"radius,omitempty"`
	HalfExtents mgl64.Vec2 `json:"halfExtents"`
	Normal      mgl64.Vec2 `json:"normal"`
}

// BodyConfig contains configuration for a moving body
type BodyConfig struct {
	Name     string      `json:"name"`
	Shape    ShapeConfig `json:"shape"`
	Position mgl64.Vec2  `json:"position"`
	Angle    float64     `json:"angle"`
	Velocity mgl64.Vec2  `json:"velocity"`
	Spin     float64     `json:"spin"`
	Mass     float64     `json:"mass"`
}

// BoundaryConfig contains configuration for a static boundary
type BoundaryConfig struct {
	Name     string      `json:"name"`
	Shape    ShapeConfig `json:"shape"`
	Position mgl64.Vec2  `json:"position"`
	Angle    float64     `json:"angle"`
}

// Build creates the configured shape.
func (c ShapeConfig) Build() (shape.Shape, error) {
	kind, err := shape.ParseKind(c.Kind)
	if err != nil {
		return shape.Shape{}, err
	}
	switch kind {
	case shape.KindDisc:
		return shape.Disc(c.Radius)
	case shape.KindBox:
		return shape.Box(c.HalfExtents)
	default:
		return shape.HalfPlane(c.Normal)
	}
}

// Build creates the configured moving body.
func (c BodyConfig) Build() (*body.MovingBody, error) {
	s, err := c.Shape.Build()
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", c.Name, err)
	}
	b, err := body.New(s, physics.NewPlacement(c.Position, c.Angle), c.Velocity, c.Spin, c.Mass)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", c.Name, err)
	}
	return b, nil
}

// Build creates the configured boundary.
func (c BoundaryConfig) Build() (*body.Boundary, error) {
	s, err := c.Shape.Build()
	if err != nil {
		return nil, fmt.Errorf("boundary %q: %w", c.Name, err)
	}
	return body.NewBoundary(s, physics.NewPlacement(c.Position, c.Angle)), nil
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimulationConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimulationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns two discs on a collision course above a floor
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		TimeStep:         0.05,
		Steps:            200,
		Gravity:          mgl64.Vec2{0, -9.8},
		PredictionMargin: 0.5,
		TOIHorizon:       100,
		HalfPlaneExtent:  1e4,
		Log: LogConfig{
			Level:  "INFO",
			Format: "json",
		},
		Render: RenderConfig{
			Enabled: false,
			Width:   60,
			Height:  20,
			Scale:   2,
			Every:   10,
		},
		Bodies: []BodyConfig{
			{
				Name:     "left",
				Shape:    ShapeConfig{Kind: "disc", Radius: 1},
				Position: mgl64.Vec2{-5, 6},
				Velocity: mgl64.Vec2{4, 0},
				Mass:     1,
			},
			{
				Name:     "right",
				Shape:    ShapeConfig{Kind: "disc", Radius: 1},
				Position: mgl64.Vec2{5, 6},
				Velocity: mgl64.Vec2{-4, 0},
				Mass:     2,
			},
		},
		Boundaries: []BoundaryConfig{
			{
				Name:  "floor",
				Shape: ShapeConfig{Kind: "half_plane", Normal: mgl64.Vec2{0, 1}},
			},
		},
	}
}
