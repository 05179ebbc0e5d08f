package resources

import (
	_ "embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

var iconCache sync.Map

// DefaultPortfolio returns the bundled portfolio content as YAML.
func DefaultPortfolio() []byte {
	return append([]byte(nil), defaultPortfolio...)
}

// Icon returns a themed icon by name, caching lookups.
func Icon(name string) (fyne.Resource, error) {
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	var resource fyne.Resource
	switch name {
	case "app":
		resource = theme.AccountIcon()
	case "paused":
		resource = theme.MediaPauseIcon()
	case "running":
		resource = theme.MediaPlayIcon()
	default:
		return nil, fmt.Errorf("load icon %s: unknown icon", name)
	}
	iconCache.Store(name, resource)
	return resource, nil
}

// MustIcon returns a themed icon or panics on error.
func MustIcon(name string) fyne.Resource {
	resource, err := Icon(name)
	if err != nil {
		panic(err)
	}
	return resource
}
