// internals/features/learning/entitlement/service/evaluate.go
package service

import "time"

/* =========================================================
   Session entitlement policy.
   Pure functions so the rules are testable without a DB.
========================================================= */

// Snapshot is everything the policy needs to know about a student.
type Snapshot struct {
	HasActiveSubscription bool
	PackageTitle          string
	SessionsTotal         int
	SessionsUsed          int
	SessionsScheduled     int
	SubscriptionEndDate   *time.Time
}

// Result is the session-limit contract returned to clients.
type Result struct {
	CanStartSession     bool       `json:"can_start_session"`
	Reason              string     `json:"reason,omitempty"`
	SessionsUsed        int        `json:"sessions_used"`
	SessionsScheduled   int        `json:"sessions_scheduled"`
	SessionsTotal       int        `json:"sessions_total"`
	RemainingSessions   int        `json:"remaining_sessions"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	NextMonthStart      time.Time  `json:"next_month_start"`
	PackageTitle        string     `json:"package_title,omitempty"`
}

// slotHoldingStatuses are the class states that occupy one of the period's
// session slots. A running class keeps its slot until it finalizes into the
// used counter, otherwise a student could book past the limit mid-class.
var slotHoldingStatuses = []string{"SCHEDULED", "IN_PROGRESS"}

// SlotHoldingStatuses returns the class states counted against the limit.
func SlotHoldingStatuses() []string {
	return slotHoldingStatuses
}

// SessionHoldsSlot reports whether a class in the given state still occupies
// a session slot.
func SessionHoldsSlot(status string) bool {
	for _, s := range slotHoldingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// NextMonthStart returns the first instant of the next calendar month in UTC.
// Counters reset on calendar-month boundaries, not subscription anniversaries.
func NextMonthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// Evaluate applies the entitlement rules to a snapshot.
// remaining = total - (used + scheduled); never negative.
func Evaluate(snap Snapshot, now time.Time) Result {
	res := Result{
		SessionsUsed:        snap.SessionsUsed,
		SessionsScheduled:   snap.SessionsScheduled,
		SessionsTotal:       snap.SessionsTotal,
		SubscriptionEndDate: snap.SubscriptionEndDate,
		NextMonthStart:      NextMonthStart(now),
		PackageTitle:        snap.PackageTitle,
	}

	remaining := snap.SessionsTotal - (snap.SessionsUsed + snap.SessionsScheduled)
	if remaining < 0 {
		remaining = 0
	}
	res.RemainingSessions = remaining

	switch {
	case !snap.HasActiveSubscription:
		res.Reason = "No active subscription"
	case remaining <= 0:
		res.Reason = "No sessions remaining this period"
	default:
		res.CanStartSession = true
	}
	return res
}
