package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeacherAssigned_BothCopies(t *testing.T) {
	msgs := TeacherAssigned("student@example.com", "Aisha", "teacher@example.com", "Ustadh Bilal", true)
	assert.Len(t, msgs, 2)
	assert.Equal(t, []string{"student@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"teacher@example.com"}, msgs[1].To)
	assert.Contains(t, msgs[0].TextBody, "Ustadh Bilal")
	assert.Contains(t, msgs[1].TextBody, "Aisha")
}

func TestTeacherRejected_CarriesReason(t *testing.T) {
	msg := TeacherRejected("teacher@example.com", "Bilal", "incomplete qualifications")
	assert.Contains(t, msg.TextBody, "incomplete qualifications")
	assert.Contains(t, msg.HTMLBody, "incomplete qualifications")
}

func TestPasswordReset_LinkInBothBodies(t *testing.T) {
	link := "https://app.example.com/reset-password?token=abc"
	msg := PasswordReset("user@example.com", "Aisha", link)
	assert.Contains(t, msg.TextBody, link)
	assert.Contains(t, msg.HTMLBody, link)
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher
	// must not panic
	d.Dispatch(StudentWelcome("user@example.com", "Aisha"))
	d.DispatchAll(TeacherApplicationReceived("teacher@example.com", "Bilal"))
}

func TestRenewalCharged_FormatsAmount(t *testing.T) {
	msg := RenewalCharged("user@example.com", "Aisha", "Quran Basics", 4900, "USD")
	assert.True(t, strings.Contains(msg.TextBody, "49.00") || strings.Contains(msg.TextBody, "4900"),
		"body should mention the charged amount: %s", msg.TextBody)
}
