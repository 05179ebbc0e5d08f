package page

import (
	"strings"
	"testing"
	"time"

	"portfolio/internal/core/model"
	"portfolio/internal/core/navigation"
	"portfolio/internal/core/rotation"
	"portfolio/internal/ui/preferences"
	"portfolio/internal/ui/toast"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixture() model.Portfolio {
	return model.Portfolio{
		Owner:   "Ada Lovelace",
		Title:   "Analyst",
		Tagline: "Notes on engines",
		Hero:    []string{"Hi, I'm Ada", "Analyst"},
		Skills: []model.SkillCategory{
			{Title: "Math", Skills: []string{"Algebra"}},
			{Title: "Engines", Skills: []string{"Difference", "Analytical"}},
		},
		Projects: []model.Project{
			{Title: "Note G", Description: "Bernoulli numbers", Tags: []string{"Math"}, Link: "https://example.com/g"},
			{Title: "Translation", Description: "Menabrea's paper"},
			{Title: "Poetical science", Description: "Essays"},
		},
		Certificates: []model.Certificate{
			{Title: "Mathematics", Issuer: "De Morgan", Year: 1840},
			{Title: "Music", Issuer: "Self"},
		},
		Contact: model.Contact{Email: "ada@example.com", Location: "London"},
	}
}

type harness struct {
	page   *Page
	window fyne.Window
	clock  *clock.Mock
	logs   *observer.ObservedLogs
}

func mount(t *testing.T, portfolio model.Portfolio, settings preferences.Settings) *harness {
	t.Helper()
	test.NewTempApp(t)
	window := test.NewTempWindow(t, widget.NewLabel("loading"))
	window.Resize(fyne.NewSize(900, 700))

	mock := clock.NewMock()
	mock.Set(time.Date(2031, time.March, 4, 10, 0, 0, 0, time.UTC))
	core, logs := observer.New(zapcore.DebugLevel)

	page, err := Mount(window, portfolio, settings, Deps{
		Clock:    mock,
		Logger:   zap.New(core),
		Dispatch: func(fn func()) { fn() },
	})
	require.NoError(t, err)
	t.Cleanup(page.Close)
	return &harness{page: page, window: window, clock: mock, logs: logs}
}

func (h *harness) carousel(t *testing.T, name string) *rotation.Engine {
	t.Helper()
	rotator, ok := h.page.Carousel(name)
	require.True(t, ok, name)
	return rotator.Engine()
}

func (h *harness) press(key fyne.KeyName) {
	h.page.typedKey(&fyne.KeyEvent{Name: key})
}

func TestMountStartsEveryCarousel(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())

	for _, name := range []string{model.SkillsName, model.ProjectsName, model.CertificatesName} {
		assert.Equal(t, rotation.StateRunning, h.carousel(t, name).State(), name)
	}
	assert.Equal(t, 3, h.logs.FilterMessage("Rotator Active").Len())
	assert.Equal(t, 1, h.logs.FilterMessage("Portfolio initialized").Len())
}

func TestSingleCertificateIsInert(t *testing.T) {
	portfolio := fixture()
	portfolio.Certificates = portfolio.Certificates[:1]
	h := mount(t, portfolio, preferences.DefaultSettings())

	assert.Equal(t, rotation.StateIdle, h.carousel(t, model.CertificatesName).State())
	inactive := h.logs.FilterMessage("Rotator Inactive").All()
	require.Len(t, inactive, 1)
	assert.Equal(t, model.CertificatesName, inactive[0].ContextMap()["rotation"])
}

func TestSettingsDriveIntervals(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.ProjectsInterval = 7 * time.Second
	h := mount(t, fixture(), settings)

	assert.Equal(t, 7*time.Second, h.carousel(t, model.ProjectsName).Config().Interval)
	assert.Equal(t, model.SkillsInterval, h.carousel(t, model.SkillsName).Config().Interval)
}

func TestFooterShowsCurrentYear(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	assert.Equal(t, "© 2031 Ada Lovelace. All rights reserved.", h.page.layout.footer.Text)
}

func TestWelcomeToastAfterDelay(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())

	h.clock.Add(WelcomeDelay - time.Millisecond)
	assert.Never(t, func() bool { return len(h.page.Toasts().Active()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	h.clock.Add(time.Millisecond)
	require.Eventually(t, func() bool { return len(h.page.Toasts().Active()) == 1 }, time.Second, 5*time.Millisecond)
	welcome := h.page.Toasts().Active()[0]
	assert.Equal(t, WelcomeMessage, welcome.Message())
	assert.Equal(t, toast.SeverityInfo, welcome.Severity())
}

func TestWelcomeToastCanBeDisabled(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.WelcomeToast = false
	h := mount(t, fixture(), settings)

	h.clock.Add(WelcomeDelay)
	assert.Never(t, func() bool { return len(h.page.Toasts().Active()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestArrowKeysReachKeyboardCarousels(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())

	h.press(fyne.KeyRight)

	assert.Equal(t, 1, h.carousel(t, model.ProjectsName).Current())
	assert.Equal(t, 1, h.carousel(t, model.CertificatesName).Current())
	assert.Equal(t, 0, h.carousel(t, model.SkillsName).Current())
}

func TestKeysWhileTypingSkipCertificates(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	h.window.Canvas().Focus(h.page.layout.contact.name)

	h.press(fyne.KeyLeft)

	assert.Equal(t, 2, h.carousel(t, model.ProjectsName).Current())
	assert.Equal(t, 0, h.carousel(t, model.CertificatesName).Current())
}

func TestEscapeClosesMenu(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	h.page.Menu().Toggle()
	require.True(t, h.page.Menu().Open())
	assert.True(t, h.page.layout.menuList.Visible())

	h.press(fyne.KeyEscape)

	assert.False(t, h.page.Menu().Open())
	assert.False(t, h.page.layout.menuList.Visible())
}

func TestTapOutsideClosesMenu(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	assert.False(t, h.page.layout.backdrop.Visible())

	h.page.Menu().Toggle()
	require.True(t, h.page.layout.backdrop.Visible())

	test.TapCanvas(h.window.Canvas(), fyne.NewPos(20, 650))

	assert.False(t, h.page.Menu().Open())
	assert.False(t, h.page.layout.menuList.Visible())
	assert.False(t, h.page.layout.backdrop.Visible())
}

func TestNavigateClosesMenu(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	h.page.Menu().Toggle()

	h.page.navigate(SectionContact)

	assert.False(t, h.page.Menu().Open())
}

func TestLightboxTakesArrowKeys(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	h.page.Lightbox().Open(0)

	h.press(fyne.KeyRight)

	assert.Equal(t, 1, h.page.Lightbox().Index())
	assert.Equal(t, "Certificate 2 of 2", h.page.Lightbox().Album())
	assert.Equal(t, 0, h.carousel(t, model.ProjectsName).Current())
}

func TestScrollEffects(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())

	h.page.scrolled(fyne.NewPos(0, 40))
	assert.False(t, h.page.NavbarScrolled())
	assert.False(t, h.page.BackToTopVisible())

	h.page.scrolled(fyne.NewPos(0, 120))
	assert.True(t, h.page.NavbarScrolled())
	assert.False(t, h.page.BackToTopVisible())

	h.page.scrolled(fyne.NewPos(0, 900))
	assert.True(t, h.page.BackToTopVisible())
	assert.Equal(t, navigation.ActiveSection(h.page.sectionTops(), 900), h.page.ActiveSection())
	assert.Equal(t, widget.HighImportance, h.page.layout.navLinks[h.page.ActiveSection()].Importance)

	h.page.scrolled(fyne.NewPos(0, 0))
	assert.Equal(t, navigation.ActiveSection(h.page.sectionTops(), 0), h.page.ActiveSection())
	assert.False(t, h.page.BackToTopVisible())
	assert.False(t, h.page.NavbarScrolled())
}

func TestContactFormNeedsEveryField(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	contact := h.page.layout.contact
	contact.name.SetText("Charles")

	contact.submit()

	active := h.page.Toasts().Active()
	require.Len(t, active, 1)
	assert.Equal(t, toast.SeverityError, active[0].Severity())
	assert.Equal(t, "Charles", contact.name.Text)
}

func TestContactFormSuccess(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	contact := h.page.layout.contact
	contact.name.SetText("Charles")
	contact.email.SetText("charles@example.com")
	contact.message.SetText("About the engine")

	contact.submit()

	active := h.page.Toasts().Active()
	require.Len(t, active, 1)
	assert.Equal(t, toast.SeveritySuccess, active[0].Severity())
	assert.True(t, strings.HasPrefix(active[0].Message(), "Thank you, Charles!"))
	assert.Empty(t, contact.name.Text)
	assert.Empty(t, contact.message.Text)
}

func TestContactFormRejectsBadEmail(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	contact := h.page.layout.contact
	contact.name.SetText("Charles")
	contact.email.SetText("not an address")
	contact.message.SetText("hi")

	contact.submit()

	active := h.page.Toasts().Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Please enter a valid email address.", active[0].Message())
}

func TestSetPausedStopsAndRestarts(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())

	h.page.SetPaused(true)
	for _, name := range []string{model.SkillsName, model.ProjectsName, model.CertificatesName} {
		assert.Equal(t, rotation.StatePaused, h.carousel(t, name).State(), name)
	}
	h.clock.Add(time.Minute)
	assert.Equal(t, 0, h.carousel(t, model.SkillsName).Current())

	h.page.SetPaused(false)
	assert.Equal(t, rotation.StateRunning, h.carousel(t, model.SkillsName).State())
}

func TestPausedPageIgnoresHoverExit(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	rotator, ok := h.page.Carousel(model.ProjectsName)
	require.True(t, ok)

	h.page.SetPaused(true)
	rotator.MouseIn(nil)
	rotator.MouseOut()
	assert.Equal(t, rotation.StatePaused, rotator.Engine().State())

	rotator.MouseIn(nil)
	h.page.SetPaused(false)
	assert.Equal(t, rotation.StatePaused, rotator.Engine().State(), "pointer still over the carousel")

	rotator.MouseOut()
	assert.Equal(t, rotation.StateRunning, rotator.Engine().State())
}

func TestCloseReleasesEverything(t *testing.T) {
	h := mount(t, fixture(), preferences.DefaultSettings())
	h.page.Toasts().Show("bye", toast.SeverityInfo, time.Minute)

	h.page.Close()
	h.page.Close()

	for _, name := range []string{model.SkillsName, model.ProjectsName, model.CertificatesName} {
		assert.Equal(t, rotation.StateClosed, h.carousel(t, name).State(), name)
	}
	assert.Empty(t, h.page.Toasts().Active())

	// Keys after close must not reach the stale carousels.
	h.page.dispatcher.TypedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, 0, h.carousel(t, model.ProjectsName).Current())

	h.clock.Add(WelcomeDelay)
	assert.Never(t, func() bool { return len(h.page.Toasts().Active()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestMountWithoutWindow(t *testing.T) {
	_, err := Mount(nil, fixture(), preferences.DefaultSettings(), Deps{})
	assert.ErrorIs(t, err, ErrNilWindow)
}
