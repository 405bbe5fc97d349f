package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to FreeSessionStatus }{
		{FreeSessionPending, FreeSessionScheduled},
		{FreeSessionPending, FreeSessionCancelled},
		{FreeSessionScheduled, FreeSessionCompleted},
		{FreeSessionScheduled, FreeSessionCancelled},
		{FreeSessionScheduled, FreeSessionNoShow},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to FreeSessionStatus }{
		{FreeSessionPending, FreeSessionCompleted},
		{FreeSessionPending, FreeSessionNoShow},
		{FreeSessionCompleted, FreeSessionScheduled},
		{FreeSessionCancelled, FreeSessionScheduled},
		{FreeSessionNoShow, FreeSessionCompleted},
		{FreeSessionScheduled, FreeSessionPending},
		{FreeSessionScheduled, FreeSessionScheduled},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestParseFreeSessionStatus(t *testing.T) {
	s, ok := ParseFreeSessionStatus(" scheduled ")
	assert.True(t, ok)
	assert.Equal(t, FreeSessionScheduled, s)

	_, ok = ParseFreeSessionStatus("unknown")
	assert.False(t, ok)
}
