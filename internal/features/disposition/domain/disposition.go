// Package domain models the bulk late-departure disposition workflow: one
// disposition command per selected loadsheet, submitted as a single batch.
package domain

import (
	"errors"
	"time"
)

// ErrInvalidRequest marks a request that failed precondition checks. No
// commands are built or submitted for an invalid request.
var ErrInvalidRequest = errors.New("invalid disposition request")

// LateReason categorizes why a trip departed late.
type LateReason string

const (
	ReasonPreLoad       LateReason = "PRE_LOAD"
	ReasonDockIssue     LateReason = "DOCK_ISSUE"
	ReasonStaffing      LateReason = "STAFFING"
	ReasonDriverIssue   LateReason = "DRIVER_ISSUE"
	ReasonWeather       LateReason = "WEATHER"
	ReasonLateInbound   LateReason = "LATE_INBOUND"
	ReasonDispatchIssue LateReason = "DISPATCH_ISSUE"
)

// Valid reports whether the reason is a member of the enum.
func (r LateReason) Valid() bool {
	switch r {
	case ReasonPreLoad, ReasonDockIssue, ReasonStaffing, ReasonDriverIssue,
		ReasonWeather, ReasonLateInbound, ReasonDispatchIssue:
		return true
	}
	return false
}

// departDateLayout is the wire format for the new scheduled-departure date.
const departDateLayout = "2006-01-02"

// BulkRequest carries the shared disposition fields applied to every
// selected loadsheet.
type BulkRequest struct {
	LoadsheetIDs []int64    `json:"loadsheetIds"`
	LateReason   LateReason `json:"lateReason"`
	// WillCauseServiceFailure must be explicitly answered; an unset value is
	// a validation violation, not an implicit false.
	WillCauseServiceFailure *bool  `json:"willCauseServiceFailure"`
	AccountableTerminalID   *int64 `json:"accountableTerminalId,omitempty"`
	Notes                   string `json:"notes,omitempty"`
	// NewScheduledDepartDate is a YYYY-MM-DD date string.
	NewScheduledDepartDate string `json:"newScheduledDepartDate"`
}

// Validate checks every submission precondition and returns the full list of
// violations, not just the first. Any violation blocks submission entirely.
func (r BulkRequest) Validate() []string {
	var violations []string

	if len(r.LoadsheetIDs) == 0 {
		violations = append(violations, "at least one loadsheet must be selected")
	}
	if !r.LateReason.Valid() {
		violations = append(violations, "a late reason must be selected")
	}
	if r.WillCauseServiceFailure == nil {
		violations = append(violations, "service failure must be answered yes or no")
	} else if *r.WillCauseServiceFailure && (r.AccountableTerminalID == nil || *r.AccountableTerminalID == 0) {
		violations = append(violations, "an accountable terminal is required when the delay causes a service failure")
	}
	if r.NewScheduledDepartDate == "" {
		violations = append(violations, "a new scheduled departure date is required")
	} else if _, err := time.Parse(departDateLayout, r.NewScheduledDepartDate); err != nil {
		violations = append(violations, "new scheduled departure date must be YYYY-MM-DD")
	}

	return violations
}

// Command is one disposition to apply to a single loadsheet. Every command
// in a batch shares the same reason, flag, terminal, date and notes.
type Command struct {
	LoadsheetID             int64
	LateReason              LateReason
	WillCauseServiceFailure bool
	AccountableTerminalID   *int64
	Notes                   string
	NewScheduledDepartDate  string
}

// Commands expands the request into one command per selected loadsheet. The
// request must already have passed Validate.
func (r BulkRequest) Commands() []Command {
	commands := make([]Command, 0, len(r.LoadsheetIDs))
	for _, id := range r.LoadsheetIDs {
		commands = append(commands, Command{
			LoadsheetID:             id,
			LateReason:              r.LateReason,
			WillCauseServiceFailure: *r.WillCauseServiceFailure,
			AccountableTerminalID:   r.AccountableTerminalID,
			Notes:                   r.Notes,
			NewScheduledDepartDate:  r.NewScheduledDepartDate,
		})
	}
	return commands
}

// ItemFailure identifies one loadsheet the TMS could not disposition.
type ItemFailure struct {
	ManifestNumber string   `json:"manifestNumber"`
	Errors         []string `json:"errors"`
}

// BulkResponse reports the batch outcome. Failed > 0 is a partial success,
// never collapsed into an overall failure.
type BulkResponse struct {
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Failures  []ItemFailure `json:"failures,omitempty"`
}

// Success reports whether every item was dispositioned.
func (r BulkResponse) Success() bool {
	return r.Failed == 0
}
