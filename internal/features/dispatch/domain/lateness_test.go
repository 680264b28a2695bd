package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clockPtr(hour, minute int) *ClockTime {
	return &ClockTime{Hour: hour, Minute: minute}
}

// TestEvaluateLateness_Late verifies the baseline case: scheduled 08:00,
// dispatched 08:15 is late by 15 minutes.
func TestEvaluateLateness_Late(t *testing.T) {
	verdict := EvaluateLateness(clockPtr(8, 0), clockPtr(8, 15))

	assert.True(t, verdict.Late)
	assert.Equal(t, 15, verdict.DelayMinutes)
}

// TestEvaluateLateness_OnTimeOrEarly verifies that on-time and early departures are not late.
func TestEvaluateLateness_OnTimeOrEarly(t *testing.T) {
	verdict := EvaluateLateness(clockPtr(8, 0), clockPtr(8, 0))
	assert.False(t, verdict.Late)
	assert.Zero(t, verdict.DelayMinutes)

	verdict = EvaluateLateness(clockPtr(8, 0), clockPtr(7, 45))
	assert.False(t, verdict.Late)
	assert.Zero(t, verdict.DelayMinutes)
}

// TestEvaluateLateness_Unresolved verifies that a missing side never flags
// the trip late: absence of data is not evidence of lateness.
func TestEvaluateLateness_Unresolved(t *testing.T) {
	assert.False(t, EvaluateLateness(nil, clockPtr(8, 15)).Late)
	assert.False(t, EvaluateLateness(clockPtr(8, 0), nil).Late)
	assert.False(t, EvaluateLateness(nil, nil).Late)
}

// TestEvaluateLateness_CrossMidnight documents the same-day limitation: a
// trip scheduled 23:50 that dispatches 00:10 the next day is not flagged.
func TestEvaluateLateness_CrossMidnight(t *testing.T) {
	verdict := EvaluateLateness(clockPtr(23, 50), clockPtr(0, 10))
	assert.False(t, verdict.Late)
}
