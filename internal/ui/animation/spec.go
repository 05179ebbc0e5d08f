package animation

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// Config contains reveal timing values.
type Config struct {
	// Stagger separates consecutive elements: element i starts at i × Stagger.
	Stagger time.Duration
	// Fade is how long each element takes to become fully opaque.
	Fade time.Duration
}

// Delay returns when element index starts to appear.
func (config Config) Delay(index int) time.Duration {
	if index <= 0 {
		return 0
	}
	return time.Duration(index) * config.Stagger
}

// FadeIn clears veil from fully opaque to transparent over duration.
// The veil is expected to sit on top of the element being revealed.
func FadeIn(veil *canvas.Rectangle, duration time.Duration) *fyne.Animation {
	red, green, blue, _ := veil.FillColor.RGBA()
	start := color.NRGBA{R: uint8(red >> 8), G: uint8(green >> 8), B: uint8(blue >> 8), A: 255}
	stop := color.NRGBA{R: start.R, G: start.G, B: start.B, A: 0}

	fade := canvas.NewColorRGBAAnimation(start, stop, duration, func(value color.Color) {
		veil.FillColor = value
		veil.Refresh()
	})
	fade.Curve = fyne.AnimationEaseOut
	fade.Start()
	return fade
}
