package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLane_Normalize_DropsUnselectedTerminals verifies steps with terminal id
// 0 are silently removed and the rest renumbered.
func TestLane_Normalize_DropsUnselectedTerminals(t *testing.T) {
	lane := Lane{
		OriginTerminalID:      10,
		DestinationTerminalID: 20,
		Steps: []LaneStep{
			{Sequence: 1, TerminalID: 11, TransitDays: 1},
			{Sequence: 2, TerminalID: 0, TransitDays: 1},
			{Sequence: 3, TerminalID: 12, TransitDays: 2},
		},
	}

	lane.Normalize()

	require.Len(t, lane.Steps, 2)
	assert.Equal(t, int64(11), lane.Steps[0].TerminalID)
	assert.Equal(t, int64(12), lane.Steps[1].TerminalID)
	assert.Equal(t, 1, lane.Steps[0].Sequence)
	assert.Equal(t, 2, lane.Steps[1].Sequence)
}

// TestLane_Normalize_RenumbersRegardlessOfInput verifies user-entered
// sequence values are overwritten with position+1.
func TestLane_Normalize_RenumbersRegardlessOfInput(t *testing.T) {
	lane := Lane{
		Steps: []LaneStep{
			{Sequence: 7, TerminalID: 11},
			{Sequence: 7, TerminalID: 12},
			{Sequence: 0, TerminalID: 13},
		},
	}

	lane.Normalize()

	for i, step := range lane.Steps {
		assert.Equal(t, i+1, step.Sequence)
	}
}

// TestLane_Normalize_ContiguousAfterAnyEdit simulates an add/remove sequence
// and checks the 1..N invariant holds after every save.
func TestLane_Normalize_ContiguousAfterAnyEdit(t *testing.T) {
	lane := Lane{Steps: []LaneStep{
		{TerminalID: 1}, {TerminalID: 2}, {TerminalID: 3}, {TerminalID: 4},
	}}
	lane.Normalize()

	// Remove the second step, append a new one.
	lane.Steps = append(lane.Steps[:1], lane.Steps[2:]...)
	lane.Steps = append(lane.Steps, LaneStep{TerminalID: 5})
	lane.Normalize()

	require.Len(t, lane.Steps, 4)
	for i, step := range lane.Steps {
		assert.Equal(t, i+1, step.Sequence, "sequence must stay contiguous")
	}
}

// TestLane_Normalize_Empty verifies an empty step list stays valid.
func TestLane_Normalize_Empty(t *testing.T) {
	lane := Lane{Steps: []LaneStep{}}
	lane.Normalize()
	assert.Empty(t, lane.Steps)
}

// TestLane_Validate covers the required terminal and per-step rules.
func TestLane_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lane    Lane
		wantErr error
	}{
		{
			name:    "missing origin",
			lane:    Lane{DestinationTerminalID: 20},
			wantErr: ErrOriginTerminalRequired,
		},
		{
			name:    "missing destination",
			lane:    Lane{OriginTerminalID: 10},
			wantErr: ErrDestinationTerminalRequired,
		},
		{
			name: "valid with steps",
			lane: Lane{
				OriginTerminalID:      10,
				DestinationTerminalID: 20,
				Steps: []LaneStep{
					{TerminalID: 11, TransitDays: 1, DepartDeadline: "22:30"},
					{TerminalID: 12, TransitDays: 0},
				},
			},
		},
		{
			name: "unselected step terminal is not an error",
			lane: Lane{
				OriginTerminalID:      10,
				DestinationTerminalID: 20,
				Steps:                 []LaneStep{{TerminalID: 0, TransitDays: -5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lane.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLane_Validate_NegativeTransitDays verifies transit days must be >= 0.
func TestLane_Validate_NegativeTransitDays(t *testing.T) {
	lane := Lane{
		OriginTerminalID:      10,
		DestinationTerminalID: 20,
		Steps:                 []LaneStep{{TerminalID: 11, TransitDays: -1}},
	}

	err := lane.Validate()

	require.ErrorIs(t, err, ErrInvalidLane)
	assert.Contains(t, err.Error(), "transit days")
}

// TestLane_Validate_BadDeadline verifies an unparseable deadline fails
// validation while independent deadlines carry no ordering constraint.
func TestLane_Validate_BadDeadline(t *testing.T) {
	lane := Lane{
		OriginTerminalID:      10,
		DestinationTerminalID: 20,
		Steps:                 []LaneStep{{TerminalID: 11, DepartDeadline: "25:99"}},
	}
	err := lane.Validate()
	require.ErrorIs(t, err, ErrInvalidLane)
	assert.Contains(t, err.Error(), "depart deadline")

	lane.Steps = []LaneStep{{TerminalID: 11, DepartDeadline: "not-a-time"}}
	assert.ErrorIs(t, lane.Validate(), ErrInvalidLane)

	lane.Steps = []LaneStep{{TerminalID: 11, DepartDeadline: "22:30"}}
	assert.NoError(t, lane.Validate())

	// Later step with an earlier deadline is allowed.
	lane.Steps = []LaneStep{
		{TerminalID: 11, DepartDeadline: "22:00"},
		{TerminalID: 12, DepartDeadline: "06:00"},
	}
	assert.NoError(t, lane.Validate())
}
