// internals/services/email/sendgrid.go
package email

import (
	"fmt"

	"qodwa_backend/internals/configs"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridMailer struct {
	key  string
	from *sgmail.Email
}

var _ Mailer = (*sendgridMailer)(nil)

func newSendgridMailer() *sendgridMailer {
	return &sendgridMailer{
		key:  configs.SendgridAPIKey,
		from: sgmail.NewEmail(configs.EmailFromName, configs.EmailFrom),
	}
}

func (s *sendgridMailer) Send(msg *Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.TextBody),
		sgmail.NewContent("text/html", msg.HTMLBody),
	)

	client := sendgrid.NewSendClient(s.key)
	resp, err := client.Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
