// Package lightbox shows certificates one at a time in a modal viewer.
package lightbox

import (
	"fmt"
	"strconv"

	"portfolio/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AlbumLabel is the position caption shown under the image.
func AlbumLabel(index, total int) string {
	return fmt.Sprintf("Certificate %d of %d", index+1, total)
}

// ImageLoader fills img from uri.
type ImageLoader func(img *canvas.Image, uri string)

// Viewer is a modal certificate album.
type Viewer struct {
	certificates []model.Certificate
	parent       fyne.Window
	load         ImageLoader

	index  int
	open   bool
	dialog dialog.Dialog

	image   *canvas.Image
	title   *widget.Label
	details *widget.Label
	album   *widget.Label
}

// New creates a viewer for certificates shown over parent. load may be nil.
func New(certificates []model.Certificate, parent fyne.Window, load ImageLoader) *Viewer {
	viewer := &Viewer{
		certificates: certificates,
		parent:       parent,
		load:         load,
		image:        canvas.NewImageFromResource(theme.DocumentIcon()),
		title:        widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		details:      widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		album:        widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	}
	viewer.image.FillMode = canvas.ImageFillContain
	viewer.image.SetMinSize(fyne.NewSize(360, 240))
	return viewer
}

// Open shows the certificate at index. Out-of-range indexes wrap.
func (viewer *Viewer) Open(index int) {
	if len(viewer.certificates) == 0 {
		return
	}
	viewer.index = model.Wrap(index, len(viewer.certificates))
	viewer.render()
	if viewer.open {
		return
	}

	previous := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), viewer.Previous)
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), viewer.Next)
	if len(viewer.certificates) < 2 {
		previous.Disable()
		next.Disable()
	}
	captions := container.NewVBox(viewer.title, viewer.details, viewer.album)
	content := container.NewBorder(nil, captions, previous, next, viewer.image)

	viewer.dialog = dialog.NewCustom("Certificates", "Close", content, viewer.parent)
	viewer.dialog.SetOnClosed(func() {
		viewer.open = false
	})
	viewer.open = true
	viewer.dialog.Show()
}

// Next moves to the following certificate, wrapping after the last.
func (viewer *Viewer) Next() {
	viewer.step(1)
}

// Previous moves to the preceding certificate, wrapping before the first.
func (viewer *Viewer) Previous() {
	viewer.step(-1)
}

// Close hides the viewer.
func (viewer *Viewer) Close() {
	if viewer.dialog != nil && viewer.open {
		viewer.dialog.Hide()
	}
	viewer.open = false
}

// HandleKey navigates while open and reports whether key was used.
func (viewer *Viewer) HandleKey(key fyne.KeyName) bool {
	if !viewer.open {
		return false
	}
	switch key {
	case fyne.KeyLeft:
		viewer.Previous()
	case fyne.KeyRight:
		viewer.Next()
	case fyne.KeyEscape:
		viewer.Close()
	default:
		return false
	}
	return true
}

// IsOpen reports whether the viewer is showing.
func (viewer *Viewer) IsOpen() bool {
	return viewer.open
}

// Index returns the certificate currently shown.
func (viewer *Viewer) Index() int {
	return viewer.index
}

// Album returns the current position caption.
func (viewer *Viewer) Album() string {
	return viewer.album.Text
}

func (viewer *Viewer) step(delta int) {
	if !viewer.open || len(viewer.certificates) == 0 {
		return
	}
	viewer.index = model.Wrap(viewer.index+delta, len(viewer.certificates))
	viewer.render()
}

func (viewer *Viewer) render() {
	certificate := viewer.certificates[viewer.index]
	viewer.title.SetText(certificate.Title)
	details := certificate.Issuer
	if certificate.Year > 0 {
		if details != "" {
			details += ", "
		}
		details += strconv.Itoa(certificate.Year)
	}
	viewer.details.SetText(details)
	viewer.album.SetText(AlbumLabel(viewer.index, len(viewer.certificates)))

	viewer.image.Resource = theme.DocumentIcon()
	viewer.image.Refresh()
	if viewer.load != nil && certificate.Image != "" {
		viewer.load(viewer.image, certificate.Image)
	}
}
