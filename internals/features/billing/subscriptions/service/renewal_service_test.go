package service

import (
	"strings"
	"testing"
	"time"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"
	"qodwa_backend/internals/features/billing/subscriptions/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRenewalDue(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name        string
		status      model.SubscriptionStatus
		autoRenew   bool
		nextBilling *time.Time
		want        bool
	}{
		{"due", model.SubscriptionActive, true, &past, true},
		{"due exactly now", model.SubscriptionActive, true, &now, true},
		{"not yet due", model.SubscriptionActive, true, &future, false},
		{"auto renew off", model.SubscriptionActive, false, &past, false},
		{"no billing date", model.SubscriptionActive, true, nil, false},
		{"pending never renews", model.SubscriptionPending, true, &past, false},
		{"past due waits for manual payment", model.SubscriptionPastDue, true, &past, false},
		{"cancelled never renews", model.SubscriptionCancelled, true, &past, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RenewalDue(tc.status, tc.autoRenew, tc.nextBilling, now))
		})
	}
}

func TestExpiryDue(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name      string
		status    model.SubscriptionStatus
		autoRenew bool
		endDate   *time.Time
		want      bool
	}{
		{"period over", model.SubscriptionActive, false, &past, true},
		{"ends exactly now", model.SubscriptionActive, false, &now, true},
		{"still inside period", model.SubscriptionActive, false, &future, false},
		{"renewal sweep owns auto renew", model.SubscriptionActive, true, &past, false},
		{"no end date", model.SubscriptionActive, false, nil, false},
		{"already cancelled", model.SubscriptionCancelled, false, &past, false},
		{"past due handled elsewhere", model.SubscriptionPastDue, false, &past, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExpiryDue(tc.status, tc.autoRenew, tc.endDate, now))
		})
	}
}

func TestCancelOutcome(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	periodEnd := now.AddDate(0, 1, 0)

	t.Run("active keeps the paid period", func(t *testing.T) {
		status, end := CancelOutcome(model.SubscriptionActive, &periodEnd, now)
		assert.Equal(t, model.SubscriptionActive, status)
		assert.Equal(t, periodEnd, end)
	})
	t.Run("active past its billing date closes now", func(t *testing.T) {
		lapsed := now.Add(-time.Hour)
		status, end := CancelOutcome(model.SubscriptionActive, &lapsed, now)
		assert.Equal(t, model.SubscriptionCancelled, status)
		assert.Equal(t, now, end)
	})
	t.Run("pending closes immediately", func(t *testing.T) {
		status, end := CancelOutcome(model.SubscriptionPending, nil, now)
		assert.Equal(t, model.SubscriptionCancelled, status)
		assert.Equal(t, now, end)
	})
	t.Run("past due closes immediately", func(t *testing.T) {
		status, _ := CancelOutcome(model.SubscriptionPastDue, &periodEnd, now)
		assert.Equal(t, model.SubscriptionCancelled, status)
	})
}

func TestPeriodEnd(t *testing.T) {
	from := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC), PeriodEnd(from, pkgModel.FrequencyMonthly))
	assert.Equal(t, time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC), PeriodEnd(from, pkgModel.FrequencyQuarterly))
	assert.Equal(t, time.Date(2027, time.June, 1, 9, 0, 0, 0, time.UTC), PeriodEnd(from, pkgModel.FrequencyYearly))
}

func TestPeriodMonths(t *testing.T) {
	assert.Equal(t, 1, PeriodMonths(pkgModel.FrequencyMonthly))
	assert.Equal(t, 3, PeriodMonths(pkgModel.FrequencyQuarterly))
	assert.Equal(t, 12, PeriodMonths(pkgModel.FrequencyYearly))
	assert.Equal(t, 1, PeriodMonths(pkgModel.SubscriptionFrequency("")))
}

func TestNewOrderID(t *testing.T) {
	id := uuid.New()
	orderID := NewOrderID(id.String())
	assert.True(t, strings.HasPrefix(orderID, "SUB-"))
	parts := strings.Split(orderID, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[1], 12)
}
