package animation

import "time"

// DefaultConfig returns the hero reveal timing: 200ms apart, 600ms each.
func DefaultConfig() Config {
	return Config{
		Stagger: 200 * time.Millisecond,
		Fade:    600 * time.Millisecond,
	}
}
