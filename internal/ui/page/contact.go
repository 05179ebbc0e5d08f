package page

import (
	"fmt"
	"net/mail"
	"strings"

	"portfolio/internal/core/model"
	"portfolio/internal/ui/toast"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

type contactForm struct {
	page    *Page
	name    *widget.Entry
	email   *widget.Entry
	message *widget.Entry
	form    *widget.Form
}

func (page *Page) newContactForm() *contactForm {
	contact := &contactForm{
		page:    page,
		name:    widget.NewEntry(),
		email:   widget.NewEntry(),
		message: widget.NewMultiLineEntry(),
	}
	contact.name.SetPlaceHolder("Your name")
	contact.email.SetPlaceHolder("you@example.com")
	contact.message.SetPlaceHolder("Say hello")
	contact.message.SetMinRowsVisible(4)

	contact.form = &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Name", Widget: contact.name},
			{Text: "Email", Widget: contact.email},
			{Text: "Message", Widget: contact.message},
		},
		SubmitText: "Send",
		OnSubmit:   contact.submit,
	}
	return contact
}

func (contact *contactForm) section(details model.Contact) fyne.CanvasObject {
	info := container.NewVBox()
	for _, line := range []string{details.Email, details.Location, details.GitHub, details.LinkedIn} {
		if strings.TrimSpace(line) != "" {
			info.Add(widget.NewLabel(line))
		}
	}
	return sectionBlock("Contact", container.NewBorder(info, nil, nil, nil, contact.form))
}

// submit acknowledges the message locally; nothing is sent anywhere.
func (contact *contactForm) submit() {
	name := strings.TrimSpace(contact.name.Text)
	email := strings.TrimSpace(contact.email.Text)
	message := strings.TrimSpace(contact.message.Text)

	if name == "" || email == "" || message == "" {
		contact.page.toasts.Show("Please fill in all fields.", toast.SeverityError, 0)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		contact.page.toasts.Show("Please enter a valid email address.", toast.SeverityError, 0)
		return
	}

	contact.page.logger.Info("contact message submitted", zap.String("name", name))
	contact.page.toasts.Show(fmt.Sprintf("Thank you, %s! Your message has been received.", name), toast.SeveritySuccess, 0)
	contact.name.SetText("")
	contact.email.SetText("")
	contact.message.SetText("")
}
