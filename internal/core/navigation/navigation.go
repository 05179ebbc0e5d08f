// Package navigation holds the scroll math behind the showcase navbar:
// which section is current, when the navbar and back-to-top button change,
// and the compact menu's open state.
package navigation

import "fyne.io/fyne/v2"

const (
	// ActivationOffset is how far above a section's top it already counts as current.
	ActivationOffset float32 = 200
	// NavbarOffset keeps scrolled-to sections clear of the navbar.
	NavbarOffset     float32 = 80

	navbarScrolledAfter   float32 = 50
	backToTopVisibleAfter float32 = 300
)

// Section is a scroll target identified by ID with its top offset in the page.
type Section struct {
	ID  string
	Top float32
}

// ActiveSection returns the ID of the last section whose top is within the
// activation offset of scrollY, or "" when none qualifies.
func ActiveSection(sections []Section, scrollY float32) string {
	current := ""
	for _, section := range sections {
		if scrollY >= section.Top-ActivationOffset {
			current = section.ID
		}
	}
	return current
}

// NavbarScrolled reports whether the navbar switches to its scrolled style.
func NavbarScrolled(scrollY float32) bool {
	return scrollY > navbarScrolledAfter
}

// BackToTopVisible reports whether the back-to-top button is shown.
func BackToTopVisible(scrollY float32) bool {
	return scrollY > backToTopVisibleAfter
}

// ScrollTarget is the scroll offset that brings a section just below the navbar.
func ScrollTarget(sectionTop float32) float32 {
	target := sectionTop - NavbarOffset
	if target < 0 {
		return 0
	}
	return target
}

// Menu tracks whether the compact navigation menu is open.
type Menu struct {
	open     bool
	onChange func(open bool)
}

// NewMenu creates a closed menu; onChange fires on every open/close flip.
func NewMenu(onChange func(open bool)) *Menu {
	return &Menu{onChange: onChange}
}

// Open reports the current state.
func (menu *Menu) Open() bool {
	return menu.open
}

// Toggle flips the menu.
func (menu *Menu) Toggle() {
	menu.set(!menu.open)
}

// Close closes the menu if open.
func (menu *Menu) Close() {
	menu.set(false)
}

// LinkChosen closes the menu after a navigation link was used.
func (menu *Menu) LinkChosen() {
	menu.Close()
}

// TappedOutside closes an open menu after a tap anywhere but the menu itself.
func (menu *Menu) TappedOutside() {
	menu.Close()
}

// HandleKey closes an open menu on Escape and reports whether it did.
func (menu *Menu) HandleKey(key fyne.KeyName) bool {
	if key != fyne.KeyEscape || !menu.open {
		return false
	}
	menu.Close()
	return true
}

func (menu *Menu) set(open bool) {
	if menu.open == open {
		return
	}
	menu.open = open
	if menu.onChange != nil {
		menu.onChange(open)
	}
}
