package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linehaul-dispatch/internal/core/config"
	"linehaul-dispatch/internal/features/disposition/domain"
)

// TestTMSDispositionAdapter_SubmitBulk verifies the batch is compacted into a
// single request and the per-item result mapped back.
func TestTMSDispositionAdapter_SubmitBulk(t *testing.T) {
	var captured map[string]interface{}
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tms-disposition/bulk", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"processed": 2,
			"failed": 1,
			"failures": [{"manifestNumber": "M-300", "errors": ["loadsheet already dispatched"]}]
		}`))
	}))
	defer server.Close()

	adapter := NewTMSDispositionAdapter(config.TMSConfig{URL: server.URL, APIKey: "test-key"})

	terminal := int64(7)
	commands := []domain.Command{
		{LoadsheetID: 100, LateReason: domain.ReasonWeather, WillCauseServiceFailure: true, AccountableTerminalID: &terminal, NewScheduledDepartDate: "2024-01-16"},
		{LoadsheetID: 200, LateReason: domain.ReasonWeather, WillCauseServiceFailure: true, AccountableTerminalID: &terminal, NewScheduledDepartDate: "2024-01-16"},
		{LoadsheetID: 300, LateReason: domain.ReasonWeather, WillCauseServiceFailure: true, AccountableTerminalID: &terminal, NewScheduledDepartDate: "2024-01-16"},
	}

	resp, err := adapter.SubmitBulk(context.Background(), commands)

	require.NoError(t, err)
	assert.Equal(t, 1, requests, "command set must be one batch request")
	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "M-300", resp.Failures[0].ManifestNumber)
	assert.Equal(t, []string{"loadsheet already dispatched"}, resp.Failures[0].Errors)

	assert.Equal(t, []interface{}{float64(100), float64(200), float64(300)}, captured["loadsheetIds"])
	assert.Equal(t, "WEATHER", captured["lateReason"])
	assert.Equal(t, true, captured["willCauseServiceFailure"])
	assert.Equal(t, float64(7), captured["accountableTerminalId"])
	assert.Equal(t, "2024-01-16", captured["newScheduledDepartDate"])
}

// TestTMSDispositionAdapter_SubmitBulk_ServerError surfaces non-200 responses.
func TestTMSDispositionAdapter_SubmitBulk_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewTMSDispositionAdapter(config.TMSConfig{URL: server.URL, APIKey: "test-key"})

	_, err := adapter.SubmitBulk(context.Background(), []domain.Command{
		{LoadsheetID: 1, LateReason: domain.ReasonStaffing, NewScheduledDepartDate: "2024-01-16"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// TestTMSDispositionAdapter_SubmitBulk_Empty short-circuits without a request.
func TestTMSDispositionAdapter_SubmitBulk_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty command set")
	}))
	defer server.Close()

	adapter := NewTMSDispositionAdapter(config.TMSConfig{URL: server.URL, APIKey: "test-key"})

	resp, err := adapter.SubmitBulk(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.Zero(t, resp.Processed)
}
