// Package validation checks names and numeric parameters read from
// simulation configuration before any body is built.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLen bounds body and boundary names.
const MaxNameLen = 32

// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.()]+$`)

// ValidateName validates a body or boundary name and returns it trimmed
func ValidateName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}

	if len(name) > MaxNameLen {
		return "", fmt.Errorf("name too long: %d characters (max %d)", len(name), MaxNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("name contains control characters")
		}
	}

	if !validNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("name contains invalid characters (only alphanumeric, spaces, hyphens, underscores, and basic punctuation allowed)")
	}

	return trimmed, nil
}

// UniqueNames reports the first name that appears more than once
func UniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("duplicate name: %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values
func ValidateFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be finite, got %v", field, value)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly positive and finite
func ValidatePositive(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got %v", field, value)
	}
	return nil
}

// ValidateNonNegative rejects negative, NaN and infinite values
func ValidateNonNegative(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%s must not be negative, got %v", field, value)
	}
	return nil
}
