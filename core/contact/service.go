// Package contact handles visitor contact-form submissions: client-side style
// validation then a single fire-and-forget send through the email relay.
package contact

import (
	"context"
	"log"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maqomuz/maktab/core"
)

const templateName = "contact"

const contactTextTemplate = `Yangi murojaat: {{.Name}}

Telefon: {{.Phone}}
Email:   {{.Email}}

Xabar:
{{.Body}}
`

const contactHTMLTemplate = `<h3>Yangi murojaat: {{.Name}}</h3>
<p><b>Telefon:</b> {{.Phone}}<br><b>Email:</b> {{.Email}}</p>
<p>{{.Body}}</p>
`

// Message is a visitor submission. Validation gates the relay: an invalid
// message never produces a network call.
type Message struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
	Body  string `json:"message" validate:"required,min=10"`
}

func (m *Message) Validate(validate *validator.Validate) error {
	m.Name = core.CleanString(m.Name)
	m.Email = core.CleanString(m.Email, true)
	m.Phone = FormatPhone(m.Phone)
	m.Body = core.CleanString(m.Body)
	return validate.Struct(m)
}

type Service struct {
	mailer   core.EmailService
	validate *validator.Validate
	conf     *core.Config
}

func NewService(mailer core.EmailService, validate *validator.Validate, conf *core.Config) *Service {
	if err := core.RegisterEmailTemplate(templateName, contactTextTemplate, contactHTMLTemplate); err != nil {
		log.Fatalf("contact: parsing email template: %v", err)
	}
	return &Service{mailer: mailer, validate: validate, conf: conf}
}

// Send validates msg and relays it to the configured recipient exactly once.
func (svc *Service) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(svc.validate); err != nil {
		return err
	}
	svc.mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{svc.conf.ContactEmail},
		Subject:      "Saytdan yangi murojaat",
		TemplateName: templateName,
		TemplateData: msg,
	})
	return nil
}

// FormatPhone normalizes an Uzbek phone number to +998XXXXXXXXX form where it
// can; anything else is returned as typed.
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	switch {
	case strings.HasPrefix(cleaned, "998") && len(cleaned) == 12:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "8") && len(cleaned) == 10:
		return "+998" + cleaned[1:]
	case len(cleaned) == 9:
		return "+998" + cleaned
	}
	return core.CleanString(phone)
}
