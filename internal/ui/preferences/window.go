package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	skills       *widget.Entry
	projects     *widget.Entry
	certificates *widget.Entry
	welcome      *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Portfolio Settings")

	skills := widget.NewEntry()
	projects := widget.NewEntry()
	certificates := widget.NewEntry()
	welcome := widget.NewCheck("Show welcome message", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Rotation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Skills every"), skills, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Projects every"), projects, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Certificates every"), certificates, widget.NewLabel("sec")),
		welcome,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		skills:       skills,
		projects:     projects,
		certificates: certificates,
		welcome:      welcome,
	}
	prefs.UpdateSettings(settings)
	saveButton.OnTapped = prefs.handleSave

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.skills.SetText(formatSeconds(settings.SkillsInterval))
	prefs.projects.SetText(formatSeconds(settings.ProjectsInterval))
	prefs.certificates.SetText(formatSeconds(settings.CertificatesInterval))
	prefs.welcome.SetChecked(settings.WelcomeToast)
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings
	if seconds, ok := parsePositiveInt(prefs.skills.Text); ok {
		settings.SkillsInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.projects.Text); ok {
		settings.ProjectsInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.certificates.Text); ok {
		settings.CertificatesInterval = time.Duration(seconds) * time.Second
	}
	settings.WelcomeToast = prefs.welcome.Checked
	return settings
}

func formatSeconds(value time.Duration) string {
	return fmt.Sprintf("%d", int(value.Seconds()))
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
