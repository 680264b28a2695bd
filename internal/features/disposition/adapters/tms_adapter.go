// Package adapters contains the TMS-facing disposition submitter.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"linehaul-dispatch/internal/core/config"
	"linehaul-dispatch/internal/core/httpclient"
	"linehaul-dispatch/internal/features/disposition/domain"
)

// TMSDispositionAdapter submits disposition batches to the TMS REST API.
type TMSDispositionAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the TMS connection details.
	config config.TMSConfig
}

// NewTMSDispositionAdapter creates a new instance of TMSDispositionAdapter.
func NewTMSDispositionAdapter(cfg config.TMSConfig) *TMSDispositionAdapter {
	return &TMSDispositionAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// bulkDispositionRequest is the TMS wire shape. Every command in a batch
// shares the same fields, so the batch is sent compacted: one set of shared
// fields plus the loadsheet id list.
type bulkDispositionRequest struct {
	LoadsheetIDs            []int64 `json:"loadsheetIds"`
	LateReason              string  `json:"lateReason"`
	WillCauseServiceFailure bool    `json:"willCauseServiceFailure"`
	AccountableTerminalID   *int64  `json:"accountableTerminalId,omitempty"`
	Notes                   string  `json:"notes,omitempty"`
	NewScheduledDepartDate  string  `json:"newScheduledDepartDate"`
}

type bulkDispositionResponse struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Failures  []struct {
		ManifestNumber string   `json:"manifestNumber"`
		Errors         []string `json:"errors"`
	} `json:"failures"`
}

// SubmitBulk sends the command set as a single batch request and maps the
// per-item result back to the domain.
func (a *TMSDispositionAdapter) SubmitBulk(ctx context.Context, commands []domain.Command) (*domain.BulkResponse, error) {
	if len(commands) == 0 {
		return &domain.BulkResponse{}, nil
	}

	shared := commands[0]
	wireReq := bulkDispositionRequest{
		LoadsheetIDs:            make([]int64, 0, len(commands)),
		LateReason:              string(shared.LateReason),
		WillCauseServiceFailure: shared.WillCauseServiceFailure,
		AccountableTerminalID:   shared.AccountableTerminalID,
		Notes:                   shared.Notes,
		NewScheduledDepartDate:  shared.NewScheduledDepartDate,
	}
	for _, cmd := range commands {
		wireReq.LoadsheetIDs = append(wireReq.LoadsheetIDs, cmd.LoadsheetID)
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode disposition request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+"/tms-disposition/bulk", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMS API returned status: %d", resp.StatusCode)
	}

	var wireResp bulkDispositionResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &domain.BulkResponse{
		Processed: wireResp.Processed,
		Failed:    wireResp.Failed,
	}
	for _, f := range wireResp.Failures {
		result.Failures = append(result.Failures, domain.ItemFailure{
			ManifestNumber: f.ManifestNumber,
			Errors:         f.Errors,
		})
	}
	return result, nil
}
