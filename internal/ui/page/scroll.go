package page

import (
	"image/color"
	"time"

	"portfolio/internal/core/navigation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const smoothScrollDuration = 400 * time.Millisecond

// ActiveSection returns the section whose nav link is highlighted.
func (page *Page) ActiveSection() string {
	return page.layout.activeLink
}

// ScrollOffset returns the current vertical scroll position.
func (page *Page) ScrollOffset() float32 {
	return page.layout.scroll.Offset.Y
}

// BackToTopVisible reports whether the back-to-top button is shown.
func (page *Page) BackToTopVisible() bool {
	return page.layout.backToTop.Visible()
}

// NavbarScrolled reports whether the navbar has switched to its scrolled style.
func (page *Page) NavbarScrolled() bool {
	return page.layout.navbar.FillColor != color.Transparent
}

func (page *Page) scrolled(offset fyne.Position) {
	parts := page.layout
	y := offset.Y

	if navigation.NavbarScrolled(y) {
		parts.navbar.FillColor = theme.Color(theme.ColorNameHeaderBackground)
	} else {
		parts.navbar.FillColor = color.Transparent
	}
	parts.navbar.Refresh()

	if navigation.BackToTopVisible(y) {
		parts.backToTop.Show()
	} else {
		parts.backToTop.Hide()
	}

	page.highlight(navigation.ActiveSection(page.sectionTops(), y))
}

func (page *Page) sectionTops() []navigation.Section {
	sections := make([]navigation.Section, len(page.layout.sections))
	for i, section := range page.layout.sections {
		sections[i] = navigation.Section{ID: section.id, Top: section.object.Position().Y}
	}
	return sections
}

func (page *Page) highlight(id string) {
	parts := page.layout
	if id == parts.activeLink {
		return
	}
	parts.activeLink = id
	for target, link := range parts.navLinks {
		if target == id {
			link.Importance = widget.HighImportance
		} else {
			link.Importance = widget.LowImportance
		}
		link.Refresh()
	}
}

// navigate scrolls to a section and closes the compact menu.
func (page *Page) navigate(id string) {
	for _, section := range page.layout.sections {
		if section.id == id {
			page.scrollTo(navigation.ScrollTarget(section.object.Position().Y))
			break
		}
	}
	page.menu.LinkChosen()
}

func (page *Page) scrollTo(target float32) {
	scroll := page.layout.scroll
	maxOffset := scroll.Content.MinSize().Height - scroll.Size().Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if target > maxOffset {
		target = maxOffset
	}
	start := scroll.Offset.Y

	glide := fyne.NewAnimation(smoothScrollDuration, func(progress float32) {
		scroll.Offset.Y = start + (target-start)*progress
		scroll.Refresh()
		page.scrolled(scroll.Offset)
	})
	glide.Curve = fyne.AnimationEaseInOut
	glide.Start()
}

func (page *Page) menuChanged(open bool) {
	if page.layout == nil || page.layout.menuList == nil || page.layout.backdrop == nil {
		return
	}
	if open {
		page.layout.backdrop.Show()
		page.layout.menuList.Show()
	} else {
		page.layout.menuList.Hide()
		page.layout.backdrop.Hide()
	}
}
