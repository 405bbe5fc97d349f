package service

import (
	"testing"

	pkgModel "qodwa_backend/internals/features/billing/packages/model"
	subModel "qodwa_backend/internals/features/billing/subscriptions/model"
	"qodwa_backend/internals/features/learning/classes/model"

	"github.com/stretchr/testify/assert"
)

func TestEarningFor(t *testing.T) {
	sub := &subModel.SubscriptionModel{
		SubscriptionTotalClasses: 8,
		Package: &pkgModel.PackageModel{
			PackagePriceCents: 8000,
			PackageCurrency:   "USD",
		},
	}
	amount, currency := earningFor(sub)
	assert.Equal(t, 700, amount) // 1000 per class, 70% share
	assert.Equal(t, "USD", currency)
}

func TestEarningFor_NoPackage(t *testing.T) {
	amount, currency := earningFor(&subModel.SubscriptionModel{SubscriptionTotalClasses: 8})
	assert.Zero(t, amount)
	assert.Equal(t, "USD", currency)
}

func TestEarningFor_ZeroClasses(t *testing.T) {
	sub := &subModel.SubscriptionModel{
		Package: &pkgModel.PackageModel{PackagePriceCents: 8000, PackageCurrency: "USD"},
	}
	amount, _ := earningFor(sub)
	assert.Zero(t, amount)
}

func TestEndTransition(t *testing.T) {
	cases := []struct {
		name     string
		status   model.ClassSessionStatus
		finalize bool
		wantErr  bool
	}{
		{name: "in progress finalizes", status: model.ClassInProgress, finalize: true},
		{name: "completed is a no-op", status: model.ClassCompleted},
		{name: "expired is a no-op", status: model.ClassExpired},
		{name: "scheduled rejects", status: model.ClassScheduled, wantErr: true},
		{name: "cancelled rejects", status: model.ClassCancelled, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			finalize, err := EndTransition(tc.status)
			assert.Equal(t, tc.finalize, finalize)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEndTransition_SecondEndDoesNotFinalize(t *testing.T) {
	// Simulate end called twice: the first call finalizes and moves the
	// session to COMPLETED, the second sees the final state and must not
	// touch the completion counter or the earning again.
	finalize, err := EndTransition(model.ClassInProgress)
	assert.True(t, finalize)
	assert.NoError(t, err)

	finalize, err = EndTransition(model.ClassCompleted)
	assert.False(t, finalize)
	assert.NoError(t, err)
}

func TestClassSessionStatusIsFinal(t *testing.T) {
	assert.False(t, model.ClassScheduled.IsFinal())
	assert.False(t, model.ClassInProgress.IsFinal())
	assert.True(t, model.ClassCompleted.IsFinal())
	assert.True(t, model.ClassCancelled.IsFinal())
	assert.True(t, model.ClassExpired.IsFinal())
}
