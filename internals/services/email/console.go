// internals/services/email/console.go
package email

import "log"

// consoleMailer logs instead of sending. Used when SENDGRID_API_KEY is unset.
type consoleMailer struct{}

var _ Mailer = consoleMailer{}

func (consoleMailer) Send(msg *Message) error {
	log.Printf("[EMAIL] to=%v subject=%q\n%s", msg.To, msg.Subject, msg.TextBody)
	return nil
}
