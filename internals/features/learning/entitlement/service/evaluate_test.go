package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func snap(total, used, scheduled int, active bool) Snapshot {
	return Snapshot{
		HasActiveSubscription: active,
		PackageTitle:          "Quran Recitation",
		SessionsTotal:         total,
		SessionsUsed:          used,
		SessionsScheduled:     scheduled,
	}
}

func TestEvaluate_RemainingSessions(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	res := Evaluate(snap(8, 3, 2, true), now)
	assert.True(t, res.CanStartSession)
	assert.Empty(t, res.Reason)
	assert.Equal(t, 3, res.RemainingSessions)
	assert.Equal(t, "Quran Recitation", res.PackageTitle)
}

func TestEvaluate_ScheduledCountsAgainstLimit(t *testing.T) {
	// 8 total, 6 used, 2 scheduled: everything is spoken for.
	res := Evaluate(snap(8, 6, 2, true), time.Now())
	assert.False(t, res.CanStartSession)
	assert.Equal(t, 0, res.RemainingSessions)
	assert.Equal(t, "No sessions remaining this period", res.Reason)
}

func TestSessionHoldsSlot(t *testing.T) {
	assert.True(t, SessionHoldsSlot("SCHEDULED"))
	assert.True(t, SessionHoldsSlot("IN_PROGRESS"))
	assert.False(t, SessionHoldsSlot("COMPLETED"))
	assert.False(t, SessionHoldsSlot("CANCELLED"))
	assert.False(t, SessionHoldsSlot("EXPIRED"))
	assert.ElementsMatch(t, []string{"SCHEDULED", "IN_PROGRESS"}, SlotHoldingStatuses())
}

func TestEvaluate_RunningClassKeepsItsSlot(t *testing.T) {
	// 8 total, 7 used, one class currently running. The running class still
	// occupies a slot, so nothing new may be booked.
	holding := 0
	for _, status := range []string{"IN_PROGRESS"} {
		if SessionHoldsSlot(status) {
			holding++
		}
	}
	res := Evaluate(snap(8, 7, holding, true), time.Now())
	assert.False(t, res.CanStartSession)
	assert.Equal(t, 0, res.RemainingSessions)

	// After the running class finalizes, it moved from the slot count into
	// the used count and the accounting still balances.
	res = Evaluate(snap(8, 8, 0, true), time.Now())
	assert.False(t, res.CanStartSession)
	assert.LessOrEqual(t, res.SessionsUsed+res.SessionsScheduled, res.SessionsTotal)
}

func TestEvaluate_NoActiveSubscription(t *testing.T) {
	res := Evaluate(Snapshot{}, time.Now())
	assert.False(t, res.CanStartSession)
	assert.Equal(t, "No active subscription", res.Reason)
	assert.Empty(t, res.PackageTitle)
	assert.Zero(t, res.RemainingSessions)
}

func TestEvaluate_NeverNegativeRemaining(t *testing.T) {
	res := Evaluate(snap(4, 5, 2, true), time.Now())
	assert.Equal(t, 0, res.RemainingSessions)
	assert.False(t, res.CanStartSession)
}

func TestNextMonthStart(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid month",
			now:  time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first instant of month",
			now:  time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls the year",
			now:  time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextMonthStart(tc.now))
		})
	}
}
