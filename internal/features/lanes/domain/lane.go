// Package domain defines the linehaul lane aggregate: a directed route
// between two terminals expressed as an ordered list of routing steps.
package domain

import (
	"errors"
	"fmt"

	dispatchdomain "linehaul-dispatch/internal/features/dispatch/domain"
)

var (
	// ErrLaneNotFound is returned when a lane id does not exist.
	ErrLaneNotFound = errors.New("lane not found")
	// ErrOriginTerminalRequired is returned when a lane has no origin terminal.
	ErrOriginTerminalRequired = errors.New("origin terminal must be selected")
	// ErrDestinationTerminalRequired is returned when a lane has no destination terminal.
	ErrDestinationTerminalRequired = errors.New("destination terminal must be selected")
	// ErrInvalidLane wraps per-step validation failures.
	ErrInvalidLane = errors.New("invalid lane")
)

// Lane is a directed linehaul route from an origin terminal to a destination
// terminal, optionally routed through intermediate steps.
type Lane struct {
	ID                    int64      `json:"id"`
	OriginTerminalID      int64      `json:"originTerminalId"`
	DestinationTerminalID int64      `json:"destinationTerminalId"`
	Active                bool       `json:"active"`
	Steps                 []LaneStep `json:"steps"`
}

// LaneStep is one leg of a lane. Sequence numbers are owned by the lane and
// reassigned on every save; values supplied by callers are ignored.
type LaneStep struct {
	Sequence   int   `json:"sequence"`
	TerminalID int64 `json:"terminalId"`
	// TransitDays is the scheduled number of days for this leg.
	TransitDays int `json:"transitDays"`
	// DepartDeadline is an optional "HH:MM" cutoff for departing this step.
	// Deadlines on consecutive steps are independent of each other.
	DepartDeadline string `json:"departDeadline,omitempty"`
}

// Normalize prepares the lane for persistence. Steps whose terminal was never
// selected (id 0) are dropped rather than rejected, and the survivors are
// renumbered as position+1 so sequences are always exactly 1..N.
func (l *Lane) Normalize() {
	kept := l.Steps[:0]
	for _, step := range l.Steps {
		if step.TerminalID == 0 {
			continue
		}
		kept = append(kept, step)
	}
	for i := range kept {
		kept[i].Sequence = i + 1
	}
	l.Steps = kept
}

// Validate checks the lane is saveable. It does not require Normalize to have
// run: steps with terminal id 0 are skipped here because Normalize will drop
// them anyway.
func (l *Lane) Validate() error {
	if l.OriginTerminalID == 0 {
		return ErrOriginTerminalRequired
	}
	if l.DestinationTerminalID == 0 {
		return ErrDestinationTerminalRequired
	}
	for i, step := range l.Steps {
		if step.TerminalID == 0 {
			continue
		}
		if step.TransitDays < 0 {
			return fmt.Errorf("%w: step %d: transit days must not be negative", ErrInvalidLane, i+1)
		}
		if step.DepartDeadline != "" {
			if _, ok := dispatchdomain.ParseClock(step.DepartDeadline); !ok {
				return fmt.Errorf("%w: step %d: invalid depart deadline %q", ErrInvalidLane, i+1, step.DepartDeadline)
			}
		}
	}
	return nil
}
