package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linehaul-dispatch/internal/features/disposition/domain"
)

// mockSubmitter records submitted command sets.
type mockSubmitter struct {
	submitted   [][]domain.Command
	response    *domain.BulkResponse
	returnError error
}

func (m *mockSubmitter) SubmitBulk(ctx context.Context, commands []domain.Command) (*domain.BulkResponse, error) {
	m.submitted = append(m.submitted, commands)
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.response, nil
}

func boolPtr(b bool) *bool { return &b }

func validRequest() domain.BulkRequest {
	return domain.BulkRequest{
		LoadsheetIDs:            []int64{10, 20, 30},
		LateReason:              domain.ReasonDockIssue,
		WillCauseServiceFailure: boolPtr(false),
		NewScheduledDepartDate:  "2024-01-16",
	}
}

// TestDispositionService_Execute_Submits verifies one command per loadsheet
// goes out in a single batch.
func TestDispositionService_Execute_Submits(t *testing.T) {
	submitter := &mockSubmitter{response: &domain.BulkResponse{Processed: 3}}
	svc := NewDispositionService(submitter)

	resp, err := svc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success())
	require.Len(t, submitter.submitted, 1, "must be a single batch request")
	assert.Len(t, submitter.submitted[0], 3)
}

// TestDispositionService_Execute_BlocksInvalidRequest verifies nothing is
// submitted when any precondition fails.
func TestDispositionService_Execute_BlocksInvalidRequest(t *testing.T) {
	submitter := &mockSubmitter{}
	svc := NewDispositionService(submitter)

	req := validRequest()
	req.WillCauseServiceFailure = boolPtr(true) // terminal missing

	_, err := svc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Empty(t, submitter.submitted, "no partial command may be emitted")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0], "accountable terminal")
}

// TestDispositionService_Execute_PartialFailurePassesThrough verifies failed
// items stay a partial success, not an error.
func TestDispositionService_Execute_PartialFailurePassesThrough(t *testing.T) {
	submitter := &mockSubmitter{response: &domain.BulkResponse{
		Processed: 2,
		Failed:    1,
		Failures:  []domain.ItemFailure{{ManifestNumber: "M-300", Errors: []string{"no trip"}}},
	}}
	svc := NewDispositionService(submitter)

	resp, err := svc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, resp.Success())
	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "M-300", resp.Failures[0].ManifestNumber)
}

// TestDispositionService_Execute_TransportError surfaces submitter failures.
func TestDispositionService_Execute_TransportError(t *testing.T) {
	submitter := &mockSubmitter{returnError: errors.New("connection reset")}
	svc := NewDispositionService(submitter)

	_, err := svc.Execute(context.Background(), validRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidRequest)
}
