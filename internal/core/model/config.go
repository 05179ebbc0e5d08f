package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a rotation configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid rotation config")

// KeyboardRule defines how arrow keys reach a rotation.
type KeyboardRule int

const (
	KeyboardNone KeyboardRule = iota
	KeyboardGlobal
	KeyboardUnlessEditing
)

// String returns the rule name used in logs and settings files.
func (rule KeyboardRule) String() string {
	switch rule {
	case KeyboardGlobal:
		return "global"
	case KeyboardUnlessEditing:
		return "unless_editing"
	default:
		return "none"
	}
}

// Controls lists the interaction bindings enabled for a rotation.
type Controls struct {
	HoverPause bool
	Indicators bool
	Arrows     bool
	Keyboard   KeyboardRule
}

// RotationConfig contains runtime settings for a single rotation instance.
type RotationConfig struct {
	Name               string
	Interval           time.Duration
	TransitionDuration time.Duration
	Controls           Controls
}

// Validate reports whether the config can drive a rotation.
func (config RotationConfig) Validate() error {
	if config.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidConfig)
	}
	if config.Interval <= 0 {
		return fmt.Errorf("%w: %s: interval must be positive, got %s", ErrInvalidConfig, config.Name, config.Interval)
	}
	if config.TransitionDuration <= 0 {
		return fmt.Errorf("%w: %s: transition duration must be positive, got %s", ErrInvalidConfig, config.Name, config.TransitionDuration)
	}
	return nil
}

// WithInterval returns a copy of the config using the given interval when it is positive.
func (config RotationConfig) WithInterval(interval time.Duration) RotationConfig {
	if interval > 0 {
		config.Interval = interval
	}
	return config
}

// Wrap maps any index onto [0, n). It returns 0 when n <= 0.
func Wrap(index, n int) int {
	if n <= 0 {
		return 0
	}
	index %= n
	if index < 0 {
		index += n
	}
	return index
}
