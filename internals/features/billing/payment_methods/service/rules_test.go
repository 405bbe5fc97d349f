package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRemovePaymentMethod(t *testing.T) {
	cases := []struct {
		name          string
		isDefault     bool
		activeMethods int64
		autoRenewSubs int64
		want          bool
	}{
		{"only method, no auto renew", true, 1, 0, true},
		{"only method backing auto renew", true, 1, 1, false},
		{"non-default with auto renew and a spare", false, 2, 1, true},
		{"default with a spare", true, 2, 0, false},
		{"non-default, several methods", false, 3, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := CanRemovePaymentMethod(tc.isDefault, tc.activeMethods, tc.autoRenewSubs)
			assert.Equal(t, tc.want, ok)
			if tc.want {
				assert.Empty(t, reason)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestCanToggleAutoRenew(t *testing.T) {
	ok, reason := CanToggleAutoRenew(true, 0)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, _ = CanToggleAutoRenew(true, 1)
	assert.True(t, ok)

	// Disabling never depends on stored methods.
	ok, _ = CanToggleAutoRenew(false, 0)
	assert.True(t, ok)
}
