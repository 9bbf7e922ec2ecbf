// Package yamlutil wraps YAML decoding to isolate the external dependency.
// Config files and post frontmatter both decode through here, so swapping
// the underlying YAML library touches a single file.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DefaultMaxInputSize limits YAML input to prevent memory exhaustion (1MB).
const DefaultMaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// decodeOptions collects per-call decoding behavior.
type decodeOptions struct {
	strict  bool
	maxSize int
}

// Option adjusts a single Unmarshal call.
type Option func(*decodeOptions)

// Strict rejects fields the destination struct does not declare.
func Strict() Option {
	return func(o *decodeOptions) { o.strict = true }
}

// MaxSize overrides DefaultMaxInputSize. Non-positive values are ignored.
func MaxSize(n int) Option {
	return func(o *decodeOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// Unmarshal decodes YAML data into v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o := decodeOptions{maxSize: DefaultMaxInputSize}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > o.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), o.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var yamlOpts []yaml.DecodeOption
	if o.strict {
		yamlOpts = append(yamlOpts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
