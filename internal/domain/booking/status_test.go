package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"waiting to approved", StatusWaiting, StatusApproved, true},
		{"waiting to rejected", StatusWaiting, StatusRejected, true},
		{"approved is terminal", StatusApproved, StatusRejected, false},
		{"approved cannot re-approve", StatusApproved, StatusApproved, false},
		{"rejected is terminal", StatusRejected, StatusApproved, false},
		{"waiting cannot stay waiting", StatusWaiting, StatusWaiting, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("WAITING")
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, s)

	_, err = ParseStatus("waiting")
	assert.Error(t, err)

	_, err = ParseStatus("DELIVERED")
	assert.Error(t, err)
}

func TestDecisionStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, DecisionStatus(true))
	assert.Equal(t, StatusRejected, DecisionStatus(false))
}
