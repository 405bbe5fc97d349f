// internals/services/email/mailer.go
package email

import (
	"log"

	"qodwa_backend/internals/configs"
)

type Message struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

func (m *Message) HasRecipients() bool { return len(m.To) > 0 }

// Mailer is the transport. Sendgrid in production, console otherwise.
type Mailer interface {
	Send(msg *Message) error
}

/* =========================================================
   Dispatcher — fire-and-forget on top of a Mailer
   ========================================================= */

// Dispatcher sends transactional mail without ever failing the caller:
// errors are logged, the primary transaction is never blocked.
type Dispatcher struct {
	mailer     Mailer
	subjPrefix string
}

// Default is initialized once at bootstrap (see main.go).
var Default *Dispatcher

func Init() {
	Default = NewDispatcherFromEnv()
}

func NewDispatcherFromEnv() *Dispatcher {
	var m Mailer
	if configs.SendgridAPIKey != "" {
		m = newSendgridMailer()
	} else {
		m = consoleMailer{}
	}
	return &Dispatcher{mailer: m, subjPrefix: "[" + configs.EmailFromName + "] "}
}

// Dispatch sends one message on a goroutine. Best-effort only.
func (d *Dispatcher) Dispatch(msg *Message) {
	if d == nil || msg == nil || !msg.HasRecipients() {
		return
	}
	msg.Subject = d.subjPrefix + msg.Subject
	go func() {
		if err := d.mailer.Send(msg); err != nil {
			log.Printf("[EMAIL ERROR] %q to %v: %v", msg.Subject, msg.To, err)
		}
	}()
}

// DispatchAll sends a batch all-settled: one recipient failing never
// aborts the rest.
func (d *Dispatcher) DispatchAll(msgs []*Message) {
	if d == nil {
		return
	}
	for _, msg := range msgs {
		d.Dispatch(msg)
	}
}
