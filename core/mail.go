package core

import (
	"bytes"
	htmltmpl "html/template"
	"net/mail"
	"sync"
	texttmpl "text/template"
)

var (
	emailTemplates   = make(map[string]emailTemplate)
	emailTemplatesMu sync.RWMutex
)

type (
	emailTemplate struct {
		text *texttmpl.Template
		html *htmltmpl.Template
	}

	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// RegisterEmailTemplate makes a named template pair available to
// EmailMessage.Render. Either template may be empty.
func RegisterEmailTemplate(name, text, html string) error {
	tmpl := emailTemplate{}
	if text != "" {
		t, err := texttmpl.New(name + ".txt").Parse(text)
		if err != nil {
			return err
		}
		tmpl.text = t
	}
	if html != "" {
		t, err := htmltmpl.New(name + ".gohtml").Parse(html)
		if err != nil {
			return err
		}
		tmpl.html = t
	}
	emailTemplatesMu.Lock()
	emailTemplates[name] = tmpl
	emailTemplatesMu.Unlock()
	return nil
}

func (m *EmailMessage) Render() error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
	}
	if m.TemplateName == "" {
		return nil
	}

	emailTemplatesMu.RLock()
	tmpl, ok := emailTemplates[m.TemplateName]
	emailTemplatesMu.RUnlock()
	if !ok {
		return nil
	}

	if tmpl.text != nil {
		var buff bytes.Buffer
		if err := tmpl.text.Execute(&buff, m.TemplateData); err != nil {
			return err
		}
		m.TextContent = buff.String()
	}
	if tmpl.html != nil {
		var buff bytes.Buffer
		if err := tmpl.html.Execute(&buff, m.TemplateData); err != nil {
			return err
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
