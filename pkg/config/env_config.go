// pkg/config/env_config.go
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/opd-ai/go-rigid/pkg/logging"
	"github.com/opd-ai/go-rigid/pkg/validation"
)

// ValidationError reports the first invalid field of a configuration
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// ApplyEnvironmentOverrides replaces config values with any RIGID_* environment
// variables that are set, then validates the result.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	config.TimeStep = getEnvAsFloatOrDefault("RIGID_TIME_STEP", config.TimeStep)
	config.Steps = getEnvAsIntOrDefault("RIGID_STEPS", config.Steps)
	config.PredictionMargin = getEnvAsFloatOrDefault("RIGID_PREDICTION_MARGIN", config.PredictionMargin)
	config.Gravity[0] = getEnvAsFloatOrDefault("RIGID_GRAVITY_X", config.Gravity[0])
	config.Gravity[1] = getEnvAsFloatOrDefault("RIGID_GRAVITY_Y", config.Gravity[1])
	config.Log.Level = getEnvOrDefault(logging.LevelEnvVar, config.Log.Level)

	return config.Validate()
}

// Validate checks the configuration and that every body and boundary can be built
func (c *SimulationConfig) Validate() error {
	if err := validation.ValidatePositive("time step", c.TimeStep); err != nil {
		return &ValidationError{Field: "TimeStep", Value: c.TimeStep, Message: err.Error()}
	}
	if c.Steps < 1 {
		return &ValidationError{Field: "Steps", Value: c.Steps, Message: "must be at least 1"}
	}
	for i, g := range c.Gravity {
		if err := validation.ValidateFinite("gravity", g); err != nil {
			return &ValidationError{Field: fmt.Sprintf("Gravity[%d]", i), Value: g, Message: err.Error()}
		}
	}
	if err := validation.ValidateNonNegative("prediction margin", c.PredictionMargin); err != nil {
		return &ValidationError{Field: "PredictionMargin", Value: c.PredictionMargin, Message: err.Error()}
	}
	if c.TOIHorizon < 0 || math.IsNaN(c.TOIHorizon) {
		return &ValidationError{Field: "TOIHorizon", Value: c.TOIHorizon, Message: "must not be negative"}
	}
	if c.Render.Enabled && (c.Render.Width < 3 || c.Render.Height < 3 || c.Render.Scale <= 0) {
		return &ValidationError{Field: "Render", Value: c.Render, Message: "needs at least 3x3 cells and a positive scale"}
	}

	names := make([]string, 0, len(c.Bodies)+len(c.Boundaries))
	for i, b := range c.Bodies {
		name, err := validation.ValidateName(b.Name)
		if err != nil {
			return &ValidationError{Field: fmt.Sprintf("Bodies[%d].Name", i), Value: b.Name, Message: err.Error()}
		}
		if _, err := b.Build(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("Bodies[%d]", i), Value: b.Name, Message: err.Error()}
		}
		names = append(names, name)
	}
	for i, b := range c.Boundaries {
		name, err := validation.ValidateName(b.Name)
		if err != nil {
			return &ValidationError{Field: fmt.Sprintf("Boundaries[%d].Name", i), Value: b.Name, Message: err.Error()}
		}
		if _, err := b.Build(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("Boundaries[%d]", i), Value: b.Name, Message: err.Error()}
		}
		names = append(names, name)
	}
	if err := validation.UniqueNames(names); err != nil {
		return &ValidationError{Field: "Names", Value: len(names), Message: err.Error()}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnvOrDefault(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}
