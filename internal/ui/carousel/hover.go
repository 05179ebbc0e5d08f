package carousel

import (
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hoverTarget receives the combined hover state of a zone.
type hoverTarget interface {
	PointerEntered()
	PointerExited()
}

// HoverZone tracks the pointer over a carousel as a whole. Fyne only delivers
// hover to the deepest hoverable object, so the carousel and every hoverable
// widget inside it report to the same zone, and the zone counts as left only
// when none of them holds the pointer.
type HoverZone struct {
	mu       sync.Mutex
	depth    int
	inside   bool
	target   hoverTarget
	dispatch func(func())
}

// NewHoverZone creates a zone for widgets built before their carousel.
func NewHoverZone() *HoverZone {
	return &HoverZone{}
}

// Inside reports whether the pointer is over the zone.
func (zone *HoverZone) Inside() bool {
	zone.mu.Lock()
	defer zone.mu.Unlock()
	return zone.inside
}

// Button creates a button that keeps the zone hovered while the pointer is on it.
func (zone *HoverZone) Button(label string, icon fyne.Resource, tapped func()) *ZoneButton {
	button := &ZoneButton{zone: zone}
	button.Text = label
	button.Icon = icon
	button.OnTapped = tapped
	button.ExtendBaseWidget(button)
	return button
}

// Hyperlink creates a hyperlink that keeps the zone hovered while the pointer is on it.
func (zone *HoverZone) Hyperlink(text string, link *url.URL) *ZoneHyperlink {
	hyperlink := &ZoneHyperlink{zone: zone}
	hyperlink.Text = text
	hyperlink.URL = link
	hyperlink.ExtendBaseWidget(hyperlink)
	return hyperlink
}

func (zone *HoverZone) bind(target hoverTarget, dispatch func(func())) {
	zone.mu.Lock()
	defer zone.mu.Unlock()
	zone.target = target
	zone.dispatch = dispatch
}

func (zone *HoverZone) enter() {
	zone.mu.Lock()
	zone.depth++
	target := zone.target
	notify := !zone.inside && target != nil
	if notify {
		zone.inside = true
	}
	zone.mu.Unlock()

	if notify {
		target.PointerEntered()
	}
}

func (zone *HoverZone) leave() {
	zone.mu.Lock()
	if zone.depth > 0 {
		zone.depth--
	}
	pending := zone.depth == 0 && zone.inside
	dispatch := zone.dispatch
	zone.mu.Unlock()

	if pending {
		dispatch(zone.settle)
	}
}

// settle runs after the hover hand-off completes. Moving between two objects
// of the zone delivers MouseOut before MouseIn, so the exit is decided late.
func (zone *HoverZone) settle() {
	zone.mu.Lock()
	exit := zone.depth == 0 && zone.inside
	if exit {
		zone.inside = false
	}
	target := zone.target
	zone.mu.Unlock()

	if exit && target != nil {
		target.PointerExited()
	}
}

// ZoneButton is a widget.Button that reports hover to its zone.
type ZoneButton struct {
	widget.Button
	zone *HoverZone
}

// MouseIn implements desktop.Hoverable.
func (button *ZoneButton) MouseIn(event *desktop.MouseEvent) {
	button.Button.MouseIn(event)
	button.zone.enter()
}

// MouseOut implements desktop.Hoverable.
func (button *ZoneButton) MouseOut() {
	button.Button.MouseOut()
	button.zone.leave()
}

// ZoneHyperlink is a widget.Hyperlink that reports hover to its zone.
type ZoneHyperlink struct {
	widget.Hyperlink
	zone *HoverZone
}

// MouseIn implements desktop.Hoverable.
func (hyperlink *ZoneHyperlink) MouseIn(event *desktop.MouseEvent) {
	hyperlink.Hyperlink.MouseIn(event)
	hyperlink.zone.enter()
}

// MouseOut implements desktop.Hoverable.
func (hyperlink *ZoneHyperlink) MouseOut() {
	hyperlink.Hyperlink.MouseOut()
	hyperlink.zone.leave()
}
