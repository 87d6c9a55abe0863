package contact

import (
	"context"
	"testing"

	"github.com/go-playground/locales/uz"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/maqomuz/maktab/core"
	emailsvc "github.com/maqomuz/maktab/services/email"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	conf := core.NewTestConfig()
	validate := validator.New()
	_uz := uz.New()
	uni := ut.New(_uz, _uz)
	translator, _ := uni.GetTranslator("uz")
	core.InitValidators(validate, translator)

	emailsvc.ResetSentMessages()
	return NewService(emailsvc.NewConsoleServiceMock(conf), validate, conf)
}

func validMessage() Message {
	return Message{
		Name:  "Aziz Karimov",
		Email: "aziz@test.test",
		Phone: "+998 90 123 45 67",
		Body:  "Farzandimni maktabingizga o'qishga topshirmoqchiman.",
	}
}

func TestService_Send(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Send(context.Background(), validMessage()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if emailsvc.SentCount() != 1 {
		t.Fatalf("SentCount() = %d; want exactly one relay", emailsvc.SentCount())
	}

	sent := emailsvc.SentMessages[0]
	if len(sent.To) != 1 || sent.To[0].Address != svc.conf.ContactEmail.Address {
		t.Errorf("To = %v; want the configured contact recipient", sent.To)
	}
	if sent.Subject != "Saytdan yangi murojaat" {
		t.Errorf("Subject = %q", sent.Subject)
	}
}

func TestService_Send_invalid(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Message)
	}{
		{name: "short name", mut: func(m *Message) { m.Name = "A" }},
		{name: "bad email", mut: func(m *Message) { m.Email = "not-an-email" }},
		{name: "short phone", mut: func(m *Message) { m.Phone = "1234" }},
		{name: "short message", mut: func(m *Message) { m.Body = "salom" }},
		{name: "empty message", mut: func(m *Message) { m.Body = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			msg := validMessage()
			tt.mut(&msg)

			err := svc.Send(context.Background(), msg)
			if _, ok := errors.Cause(err).(validator.ValidationErrors); !ok {
				t.Fatalf("Send() error = %v; want validation errors", err)
			}
			if emailsvc.SentCount() != 0 {
				t.Errorf("SentCount() = %d; an invalid message must not be relayed", emailsvc.SentCount())
			}
		})
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+998901234567", "+998901234567"},
		{"998901234567", "+998901234567"},
		{"901234567", "+998901234567"},
		{"90 123 45 67", "+998901234567"},
		{"8901234567", "+998901234567"},
		{"+1 555 0100", "+1 555 0100"}, // foreign numbers pass through
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
