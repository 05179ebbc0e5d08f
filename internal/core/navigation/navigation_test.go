package navigation

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestActiveSection(t *testing.T) {
	sections := []Section{
		{ID: "home", Top: 0},
		{ID: "skills", Top: 600},
		{ID: "projects", Top: 1200},
	}

	assert.Equal(t, "home", ActiveSection(sections, 0))
	assert.Equal(t, "home", ActiveSection(sections, 399))
	assert.Equal(t, "skills", ActiveSection(sections, 400))
	assert.Equal(t, "projects", ActiveSection(sections, 5000))
	assert.Equal(t, "", ActiveSection([]Section{{ID: "late", Top: 900}}, 0))
	assert.Equal(t, "", ActiveSection(nil, 100))
}

func TestScrollThresholds(t *testing.T) {
	assert.False(t, NavbarScrolled(50))
	assert.True(t, NavbarScrolled(51))
	assert.False(t, BackToTopVisible(300))
	assert.True(t, BackToTopVisible(301))
}

func TestScrollTarget(t *testing.T) {
	assert.Equal(t, float32(520), ScrollTarget(600))
	assert.Equal(t, float32(0), ScrollTarget(40))
}

func TestMenu(t *testing.T) {
	var changes []bool
	menu := NewMenu(func(open bool) { changes = append(changes, open) })

	assert.False(t, menu.HandleKey(fyne.KeyEscape))
	menu.Toggle()
	assert.True(t, menu.Open())
	assert.False(t, menu.HandleKey(fyne.KeyEnter))
	assert.True(t, menu.HandleKey(fyne.KeyEscape))
	assert.False(t, menu.Open())

	menu.Toggle()
	menu.LinkChosen()
	menu.Close()
	assert.Equal(t, []bool{true, false, true, false}, changes)

	menu.TappedOutside()
	menu.Toggle()
	menu.TappedOutside()
	assert.False(t, menu.Open())
	assert.Equal(t, []bool{true, false, true, false, true, false}, changes)
}
