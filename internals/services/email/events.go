// internals/services/email/events.go
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"qodwa_backend/internals/configs"
)

/* =========================================================
   Shared layout
   ========================================================= */

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
    <div style="background: #0f766e; padding: 16px; text-align: center;">
      <h2 style="color: #ffffff; margin: 0;">Qodwa</h2>
    </div>
    <div style="padding: 24px;">
      <h3>{{.Title}}</h3>
      {{range .Paragraphs}}<p>{{.}}</p>{{end}}
      {{if .ButtonURL}}
      <p style="text-align: center; margin: 32px 0;">
        <a href="{{.ButtonURL}}" style="background: #0f766e; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">{{.ButtonLabel}}</a>
      </p>
      {{end}}
      <p style="color: #6b7280; font-size: 12px;">This is an automated message from the Qodwa platform.</p>
    </div>
  </body>
</html>`))

type templateData struct {
	Title       string
	Paragraphs  []string
	ButtonURL   string
	ButtonLabel string
}

func build(to []string, subject string, data templateData) *Message {
	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, data); err != nil {
		// fall back to plain text body only
		buf.Reset()
	}
	text := data.Title + "\n\n"
	for _, p := range data.Paragraphs {
		text += p + "\n\n"
	}
	if data.ButtonURL != "" {
		text += data.ButtonLabel + ": " + data.ButtonURL + "\n"
	}
	return &Message{
		To:       to,
		Subject:  subject,
		HTMLBody: buf.String(),
		TextBody: text,
	}
}

/* =========================================================
   Lifecycle events
   ========================================================= */

func StudentWelcome(to, name string) *Message {
	return build([]string{to}, "Welcome to Qodwa", templateData{
		Title: "Welcome, " + name + "!",
		Paragraphs: []string{
			"Your student account has been created.",
			"Browse our Quran and Arabic packages and book a free trial session whenever you are ready.",
		},
		ButtonURL:   configs.AppBaseURL + "/packages",
		ButtonLabel: "View Packages",
	})
}

// TeacherApplicationReceived returns the applicant copy and the admin copy.
func TeacherApplicationReceived(to, name string) []*Message {
	msgs := []*Message{
		build([]string{to}, "Application received", templateData{
			Title: "Thank you for applying, " + name,
			Paragraphs: []string{
				"We received your teacher application. Our team reviews every application manually.",
				"You will hear from us once a decision has been made.",
			},
		}),
	}
	if configs.AdminEmail != "" {
		msgs = append(msgs, build([]string{configs.AdminEmail}, "New teacher application", templateData{
			Title:       "New teacher application",
			Paragraphs:  []string{name + " applied to teach on Qodwa and is waiting for review."},
			ButtonURL:   configs.AppBaseURL + "/admin/teachers",
			ButtonLabel: "Review Application",
		}))
	}
	return msgs
}

func TeacherApproved(to, name string) *Message {
	return build([]string{to}, "Your application was approved", templateData{
		Title: "Congratulations, " + name + "!",
		Paragraphs: []string{
			"Your teacher application has been approved. You can now receive student assignments and hold classes.",
		},
		ButtonURL:   configs.AppBaseURL + "/teacher/dashboard",
		ButtonLabel: "Open Dashboard",
	})
}

func TeacherRejected(to, name, reason string) *Message {
	return build([]string{to}, "Your application was not approved", templateData{
		Title: "Application update",
		Paragraphs: []string{
			"Dear " + name + ", unfortunately your teacher application was not approved.",
			"Reason: " + reason,
			"You may apply again after addressing the points above.",
		},
	})
}

// TeacherAssigned notifies both sides of a new assignment.
func TeacherAssigned(studentEmail, studentName, teacherEmail, teacherName string, primary bool) []*Message {
	kind := "additional teacher"
	if primary {
		kind = "primary teacher"
	}
	return []*Message{
		build([]string{studentEmail}, "A teacher has been assigned to you", templateData{
			Title:      "Hello " + studentName,
			Paragraphs: []string{teacherName + " is now your " + kind + "."},
		}),
		build([]string{teacherEmail}, "New student assigned", templateData{
			Title:      "Hello " + teacherName,
			Paragraphs: []string{"You were assigned to " + studentName + " as their " + kind + "."},
		}),
	}
}

func FreeSessionScheduled(to, name string, when string, meetingLink string) *Message {
	paras := []string{"Your free trial session has been scheduled for " + when + "."}
	if meetingLink != "" {
		paras = append(paras, "Join via: "+meetingLink)
	}
	return build([]string{to}, "Your free session is scheduled", templateData{
		Title:      "Hello " + name,
		Paragraphs: paras,
	})
}

func ClassReminder(to, name, when string) *Message {
	return build([]string{to}, "Class reminder", templateData{
		Title:      "Hello " + name,
		Paragraphs: []string{"You have a class coming up at " + when + "."},
	})
}

func RenewalCharged(to, name, packageTitle string, amountCents int, currency string) *Message {
	return build([]string{to}, "Subscription renewed", templateData{
		Title: "Hello " + name,
		Paragraphs: []string{
			fmt.Sprintf("Your %s subscription was renewed for %s %.2f.", packageTitle, currency, float64(amountCents)/100),
			"Your monthly session allowance has been reset.",
		},
	})
}

func RenewalFailed(to, name, packageTitle string) *Message {
	return build([]string{to}, "We could not renew your subscription", templateData{
		Title: "Hello " + name,
		Paragraphs: []string{
			"We were unable to charge your default payment method for your " + packageTitle + " subscription.",
			"Please update your payment details to keep your classes going.",
		},
		ButtonURL:   configs.AppBaseURL + "/billing",
		ButtonLabel: "Update Payment Method",
	})
}

func PasswordReset(to, name, resetLink string) *Message {
	return build([]string{to}, "Reset your password", templateData{
		Title: "Hello " + name,
		Paragraphs: []string{
			"We received a request to reset your password. The link below is valid for one hour.",
			"If you did not request this, you can ignore this email.",
		},
		ButtonURL:   resetLink,
		ButtonLabel: "Reset Password",
	})
}
