package carousel

import (
	"testing"
	"time"

	"portfolio/internal/core/model"
	"portfolio/internal/core/rotation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(texts ...string) []fyne.CanvasObject {
	items := make([]fyne.CanvasObject, len(texts))
	for i, text := range texts {
		items[i] = widget.NewLabel(text)
	}
	return items
}

func newCarousel(t *testing.T, config model.RotationConfig, items []fyne.CanvasObject) (*Carousel, *clock.Mock) {
	t.Helper()
	test.NewTempApp(t)
	mock := clock.NewMock()
	carousel, err := New(config, items, Options{
		Clock:    mock,
		Dispatch: func(fn func()) { fn() },
	})
	require.NoError(t, err)
	t.Cleanup(carousel.Close)
	return carousel, mock
}

func TestNewShowsFirstItem(t *testing.T) {
	items := labels("Go", "Rust", "SQL")
	carousel, _ := newCarousel(t, model.SkillsRotation(), items)

	assert.True(t, items[0].Visible())
	assert.False(t, items[1].Visible())
	assert.False(t, items[2].Visible())
	assert.True(t, carousel.IndicatorActive(0))
	assert.False(t, carousel.IndicatorActive(1))
	assert.Equal(t, rotation.ItemActive, carousel.ItemState(0))
	assert.Nil(t, carousel.prev)
}

func TestDotTapJumpsToItem(t *testing.T) {
	items := labels("a", "b", "c")
	carousel, _ := newCarousel(t, model.ProjectsRotation(), items)
	carousel.Start()

	test.Tap(carousel.dots[2])

	assert.Equal(t, 2, carousel.Engine().Current())
	assert.True(t, items[2].Visible())
	assert.Equal(t, rotation.ItemLeaving, carousel.ItemState(0))
	assert.True(t, carousel.IndicatorActive(2))
	assert.False(t, carousel.IndicatorActive(0))
}

func TestLeavingItemStaysUntilCleared(t *testing.T) {
	items := labels("a", "b", "c")
	carousel, mock := newCarousel(t, model.ProjectsRotation(), items)
	carousel.Start()

	test.Tap(carousel.dots[1])

	assert.True(t, items[0].Visible(), "leaving item still on screen")
	assert.False(t, items[2].Visible())
	top := carousel.viewport.Objects[len(carousel.viewport.Objects)-1]
	assert.Equal(t, carousel.slots[1], top, "active item drawn above the leaving one")

	mock.Add(model.ProjectsRotation().TransitionDuration)
	require.Eventually(t, func() bool { return !items[0].Visible() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, rotation.ItemInactive, carousel.ItemState(0))
	assert.True(t, items[1].Visible())
}

func TestArrowsWrapAround(t *testing.T) {
	items := labels("one", "two", "three")
	carousel, _ := newCarousel(t, model.CertificatesRotation(), items)
	carousel.Start()

	test.Tap(carousel.prev)
	assert.Equal(t, 2, carousel.Engine().Current())

	test.Tap(carousel.next)
	assert.Equal(t, 0, carousel.Engine().Current())
	assert.True(t, items[0].Visible())
}

func centre(object fyne.CanvasObject) fyne.Position {
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(object)
	return origin.Add(fyne.NewPos(object.Size().Width/2, object.Size().Height/2))
}

func TestHoverCoversControlsInside(t *testing.T) {
	items := labels("a", "b", "c")
	carousel, mock := newCarousel(t, model.ProjectsRotation(), items)
	outside := widget.NewLabel("outside")
	window := test.NewTempWindow(t, container.NewBorder(nil, outside, nil, nil, carousel))
	window.Resize(fyne.NewSize(400, 300))
	require.True(t, carousel.Start())

	test.MoveMouse(window.Canvas(), centre(items[0]))
	assert.Equal(t, rotation.StatePaused, carousel.Engine().State())

	for _, control := range []fyne.CanvasObject{carousel.dots[1], carousel.next, carousel.prev, items[0]} {
		test.MoveMouse(window.Canvas(), centre(control))
		assert.Equal(t, rotation.StatePaused, carousel.Engine().State())
		assert.True(t, carousel.Hover().Inside())
	}
	mock.Add(10 * time.Second)
	assert.Equal(t, 0, carousel.Engine().Current())

	test.MoveMouse(window.Canvas(), centre(outside))
	assert.Equal(t, rotation.StateRunning, carousel.Engine().State())
	assert.False(t, carousel.Hover().Inside())
}

type hoverRecorder struct {
	calls []string
}

func (recorder *hoverRecorder) PointerEntered() {
	recorder.calls = append(recorder.calls, "enter")
}

func (recorder *hoverRecorder) PointerExited() {
	recorder.calls = append(recorder.calls, "exit")
}

func TestHoverZoneHandOffNeverExits(t *testing.T) {
	var queued []func()
	flush := func() {
		for len(queued) > 0 {
			next := queued[0]
			queued = queued[1:]
			next()
		}
	}
	recorder := &hoverRecorder{}
	zone := NewHoverZone()
	zone.bind(recorder, func(fn func()) { queued = append(queued, fn) })

	zone.enter()
	zone.leave()
	zone.enter()
	flush()
	assert.Equal(t, []string{"enter"}, recorder.calls)
	assert.True(t, zone.Inside())

	zone.leave()
	flush()
	assert.Equal(t, []string{"enter", "exit"}, recorder.calls)
	assert.False(t, zone.Inside())
}

func TestZoneWidgetsKeepCarouselHovered(t *testing.T) {
	test.NewTempApp(t)
	zone := NewHoverZone()
	view := zone.Button("View", nil, nil)
	items := []fyne.CanvasObject{container.NewVBox(widget.NewLabel("a"), view), widget.NewLabel("b")}
	carousel, err := New(model.CertificatesRotation(), items, Options{
		Clock:    clock.NewMock(),
		Dispatch: func(fn func()) { fn() },
		Hover:    zone,
	})
	require.NoError(t, err)
	t.Cleanup(carousel.Close)
	window := test.NewTempWindow(t, carousel)
	window.Resize(fyne.NewSize(400, 300))
	require.True(t, carousel.Start())

	test.MoveMouse(window.Canvas(), centre(view))
	assert.Equal(t, rotation.StatePaused, carousel.Engine().State())
	assert.Same(t, zone, carousel.Hover())
}

func TestHeldCarouselIgnoresHoverExit(t *testing.T) {
	carousel, _ := newCarousel(t, model.ProjectsRotation(), labels("a", "b"))
	require.True(t, carousel.Start())

	carousel.SetHeld(true)
	carousel.MouseIn(nil)
	carousel.MouseOut()
	assert.Equal(t, rotation.StatePaused, carousel.Engine().State())

	carousel.SetHeld(false)
	assert.Equal(t, rotation.StateRunning, carousel.Engine().State())
}

func TestAutoAdvanceMovesDots(t *testing.T) {
	carousel, mock := newCarousel(t, model.SkillsRotation(), labels("a", "b", "c"))
	require.True(t, carousel.Start())

	mock.Add(model.SkillsInterval)
	require.Eventually(t, func() bool { return carousel.IndicatorActive(1) }, time.Second, 5*time.Millisecond)
	assert.False(t, carousel.IndicatorActive(0))
}

func TestSingleItemIsInert(t *testing.T) {
	items := labels("only")
	carousel, _ := newCarousel(t, model.CertificatesRotation(), items)

	assert.False(t, carousel.Start())
	assert.Empty(t, carousel.dots)
	assert.Nil(t, carousel.prev)
	assert.True(t, items[0].Visible())
	assert.Equal(t, rotation.StateIdle, carousel.Engine().State())
}

func TestRendererShowsContent(t *testing.T) {
	carousel, _ := newCarousel(t, model.ProjectsRotation(), labels("a", "b"))
	window := test.NewTempWindow(t, carousel)
	window.Resize(fyne.NewSize(300, 200))

	assert.Greater(t, carousel.MinSize().Height, float32(0))
}
