// Package yamlutil decodes the tool's YAML configuration files behind
// one strict entry point, so config parsing behaves the same wherever
// it happens: unknown keys are rejected instead of silently dropped,
// which surfaces typos like "maxDepht" to the user immediately.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded input. Config files are tiny; anything
// approaching this limit is not a config file.
var MaxInputSize = 1 << 20

var (
	ErrNoData         = errors.New("yamlutil: no data to decode")
	ErrNilDestination = errors.New("yamlutil: nil destination")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v, rejecting unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNoData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
