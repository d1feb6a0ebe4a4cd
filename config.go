package thompson

import (
	"github.com/coregx/thompson/nfa"
)

// Config controls compilation and matching.
//
// Example:
//
//	config := thompson.DefaultConfig()
//	config.LegacyDot = true // '.' consumes nothing
//	a, err := thompson.CompileWithConfig("a.c", config)
type Config struct {
	// LegacyDot compiles '.' as a free epsilon move that consumes nothing.
	// By default '.' consumes exactly one character in 0-127.
	// Default: false
	LegacyDot bool

	// Prefilter enables rejection of inputs that contain none of the
	// literals every accepted input must contain, and exact-set matching
	// for patterns that are plain literal alternations.
	// Default: true
	Prefilter bool

	// MaxRecursionDepth limits group nesting.
	// Default: 100
	MaxRecursionDepth int

	// MaxRepeat limits the counts of a bounded repetition {m,n}.
	// Default: 1000
	MaxRepeat int

	// MaxStates limits the size of the compiled automaton.
	// Default: 1 << 20
	MaxStates int

	// Logger, when non-nil, receives compilation traces.
	Logger nfa.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	def := nfa.DefaultCompilerConfig()
	return Config{
		Prefilter:         true,
		MaxRecursionDepth: def.MaxRecursionDepth,
		MaxRepeat:         def.MaxRepeat,
		MaxStates:         def.MaxStates,
	}
}

// Validate checks that no limit is negative. Zero limits select defaults.
func (c Config) Validate() error {
	switch {
	case c.MaxRecursionDepth < 0:
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must not be negative"}
	case c.MaxRepeat < 0:
		return &ConfigError{Field: "MaxRepeat", Message: "must not be negative"}
	case c.MaxStates < 0:
		return &ConfigError{Field: "MaxStates", Message: "must not be negative"}
	}
	return nil
}

func (c Config) compilerConfig() nfa.CompilerConfig {
	return nfa.CompilerConfig{
		LegacyDot:         c.LegacyDot,
		MaxRecursionDepth: c.MaxRecursionDepth,
		MaxRepeat:         c.MaxRepeat,
		MaxStates:         c.MaxStates,
		Logger:            c.Logger,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "thompson: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
