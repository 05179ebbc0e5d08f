package page

import (
	"fmt"
	"image/color"
	"net/url"
	"strconv"
	"strings"

	"portfolio/internal/ui/animation"
	"portfolio/internal/ui/carousel"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Section IDs, in page order.
const (
	SectionHome         = "home"
	SectionSkills       = "skills"
	SectionProjects     = "projects"
	SectionCertificates = "certificates"
	SectionContact      = "contact"
)

type sectionView struct {
	id     string
	title  string
	object fyne.CanvasObject
}

type layoutParts struct {
	root       fyne.CanvasObject
	scroll     *container.Scroll
	body       *fyne.Container
	sections   []sectionView
	navbar     *canvas.Rectangle
	navLinks   map[string]*widget.Button
	menuList   *fyne.Container
	backdrop   *backdrop
	backToTop  *widget.Button
	heroVeils  []*canvas.Rectangle
	footer     *widget.Label
	contact    *contactForm
	activeLink string
}

func (page *Page) build(reveal animation.Config) error {
	parts := &layoutParts{navLinks: make(map[string]*widget.Button)}
	page.layout = parts

	skills, err := page.skillsSection()
	if err != nil {
		return err
	}
	projects, err := page.projectsSection()
	if err != nil {
		return err
	}
	certificates, err := page.certificatesSection()
	if err != nil {
		return err
	}
	parts.contact = page.newContactForm()

	parts.sections = []sectionView{
		{id: SectionHome, title: "Home", object: page.heroSection()},
		{id: SectionSkills, title: "Skills", object: skills},
		{id: SectionProjects, title: "Projects", object: projects},
		{id: SectionCertificates, title: "Certificates", object: certificates},
		{id: SectionContact, title: "Contact", object: parts.contact.section(page.portfolio.Contact)},
	}

	parts.footer = widget.NewLabelWithStyle(page.footerText(), fyne.TextAlignCenter, fyne.TextStyle{})
	objects := make([]fyne.CanvasObject, 0, len(parts.sections)+2)
	for _, section := range parts.sections {
		objects = append(objects, section.object)
	}
	objects = append(objects, widget.NewSeparator(), parts.footer)
	parts.body = container.NewVBox(objects...)

	parts.scroll = container.NewVScroll(parts.body)
	parts.scroll.OnScrolled = page.scrolled

	navbar := page.navbar()
	parts.backToTop = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		page.scrollTo(0)
	})
	parts.backToTop.Importance = widget.HighImportance
	parts.backToTop.Hide()
	backToTopLayer := container.NewBorder(nil,
		container.NewPadded(container.NewHBox(layout.NewSpacer(), parts.backToTop)), nil, nil)

	frame := container.NewBorder(navbar, nil, nil, nil, parts.scroll)
	parts.backdrop = newBackdrop(page.menu.TappedOutside)
	parts.backdrop.Hide()
	navGap := canvas.NewRectangle(color.Transparent)
	navGap.SetMinSize(fyne.NewSize(0, navbar.MinSize().Height))
	menuLayer := container.NewBorder(container.NewVBox(navGap, parts.menuList), nil, nil, nil)
	parts.root = container.NewStack(frame, backToTopLayer, parts.backdrop, menuLayer, page.toasts.Layer())

	page.reveal = animation.New(reveal, func(index int) {
		animation.FadeIn(parts.heroVeils[index], reveal.Fade)
	}, animation.Options{Clock: page.clock, Logger: page.logger, Dispatch: page.dispatch})

	page.highlight(SectionHome)
	return nil
}

func (page *Page) navbar() fyne.CanvasObject {
	parts := page.layout
	parts.navbar = canvas.NewRectangle(color.Transparent)

	brand := widget.NewLabelWithStyle(page.portfolio.Owner, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	links := container.NewHBox()
	menuLinks := container.NewVBox()
	for _, section := range parts.sections {
		target := section.id
		link := widget.NewButton(section.title, func() {
			page.navigate(target)
		})
		link.Importance = widget.LowImportance
		parts.navLinks[target] = link
		links.Add(link)
		menuLinks.Add(widget.NewButton(section.title, func() {
			page.navigate(target)
		}))
	}
	parts.menuList = menuLinks
	menuLinks.Hide()

	toggle := widget.NewButtonWithIcon("", theme.MenuIcon(), page.menu.Toggle)
	bar := container.NewBorder(nil, nil, brand, toggle, container.NewHBox(layout.NewSpacer(), links))
	return container.NewStack(parts.navbar, container.NewPadded(bar))
}

func (page *Page) heroSection() fyne.CanvasObject {
	lines := page.portfolio.Hero
	if len(lines) == 0 {
		lines = []string{page.portfolio.Owner, page.portfolio.Title}
	}
	if page.portfolio.Tagline != "" {
		lines = append(append([]string(nil), lines...), page.portfolio.Tagline)
	}

	background := theme.Color(theme.ColorNameBackground)
	elements := make([]fyne.CanvasObject, 0, len(lines)+1)
	for i, line := range lines {
		style := fyne.TextStyle{}
		if i == 0 {
			style.Bold = true
		}
		label := widget.NewLabelWithStyle(line, fyne.TextAlignCenter, style)
		label.Wrapping = fyne.TextWrapWord
		veil := canvas.NewRectangle(withAlpha(background, 255))
		page.layout.heroVeils = append(page.layout.heroVeils, veil)
		elements = append(elements, container.NewStack(label, veil))
	}
	if page.portfolio.About != "" {
		about := widget.NewLabel(strings.TrimSpace(page.portfolio.About))
		about.Wrapping = fyne.TextWrapWord
		elements = append(elements, about)
	}
	return container.NewPadded(container.NewVBox(elements...))
}

func (page *Page) skillsSection() (fyne.CanvasObject, error) {
	items := make([]fyne.CanvasObject, len(page.portfolio.Skills))
	for i, category := range page.portfolio.Skills {
		chips := container.NewGridWrap(fyne.NewSize(140, 36))
		for _, skill := range category.Skills {
			chips.Add(widget.NewLabelWithStyle(skill, fyne.TextAlignCenter, fyne.TextStyle{}))
		}
		items[i] = widget.NewCard(category.Title, "", chips)
	}
	rotator, err := page.newCarousel(page.settings.SkillsConfig(), items, nil)
	if err != nil {
		return nil, err
	}
	return sectionBlock("Skills", rotator), nil
}

func (page *Page) projectsSection() (fyne.CanvasObject, error) {
	zone := carousel.NewHoverZone()
	items := make([]fyne.CanvasObject, len(page.portfolio.Projects))
	for i, project := range page.portfolio.Projects {
		description := widget.NewLabel(project.Description)
		description.Wrapping = fyne.TextWrapWord
		content := container.NewVBox()
		if project.Image != "" {
			content.Add(page.thumbnail(project.Image))
		}
		content.Add(description)
		if link := projectLink(zone, project.Link); link != nil {
			content.Add(link)
		}
		items[i] = widget.NewCard(project.Title, strings.Join(project.Tags, " · "), content)
	}
	rotator, err := page.newCarousel(page.settings.ProjectsConfig(), items, zone)
	if err != nil {
		return nil, err
	}
	return sectionBlock("Projects", rotator), nil
}

func (page *Page) certificatesSection() (fyne.CanvasObject, error) {
	zone := carousel.NewHoverZone()
	items := make([]fyne.CanvasObject, len(page.portfolio.Certificates))
	for i, certificate := range page.portfolio.Certificates {
		index := i
		content := container.NewVBox()
		if certificate.Image != "" {
			content.Add(page.thumbnail(certificate.Image))
		}
		content.Add(zone.Button("View", theme.ZoomInIcon(), func() {
			page.lightbox.Open(index)
		}))
		subtitle := certificate.Issuer
		if certificate.Year > 0 {
			if subtitle != "" {
				subtitle += " · "
			}
			subtitle += strconv.Itoa(certificate.Year)
		}
		items[i] = widget.NewCard(certificate.Title, subtitle, content)
	}
	rotator, err := page.newCarousel(page.settings.CertificatesConfig(), items, zone)
	if err != nil {
		return nil, err
	}
	return sectionBlock("Certificates", rotator), nil
}

func (page *Page) thumbnail(uri string) fyne.CanvasObject {
	img := canvas.NewImageFromResource(theme.FileImageIcon())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(240, 140))
	page.loadImage(img, uri)
	return img
}

func (page *Page) footerText() string {
	return fmt.Sprintf("© %d %s. All rights reserved.", page.clock.Now().Year(), page.portfolio.Owner)
}

func sectionBlock(title string, content fyne.CanvasObject) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewPadded(container.NewBorder(heading, nil, nil, nil, content))
}

func projectLink(zone *carousel.HoverZone, raw string) fyne.CanvasObject {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return nil
	}
	return zone.Hyperlink("View project", parsed)
}

// backdrop catches taps outside the open compact menu.
type backdrop struct {
	widget.BaseWidget
	onTapped func()
}

func newBackdrop(onTapped func()) *backdrop {
	shade := &backdrop{onTapped: onTapped}
	shade.ExtendBaseWidget(shade)
	return shade
}

// Tapped implements fyne.Tappable.
func (shade *backdrop) Tapped(*fyne.PointEvent) {
	shade.onTapped()
}

// CreateRenderer implements fyne.Widget.
func (shade *backdrop) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func withAlpha(value color.Color, alpha uint8) color.NRGBA {
	red, green, blue, _ := value.RGBA()
	return color.NRGBA{R: uint8(red >> 8), G: uint8(green >> 8), B: uint8(blue >> 8), A: alpha}
}
