// Package ports defines the outbound contract for disposition submission.
package ports

import (
	"context"

	"linehaul-dispatch/internal/features/disposition/domain"
)

// DispositionSubmitter sends a set of disposition commands to the TMS as a
// single batch request. Items succeed or fail independently downstream.
type DispositionSubmitter interface {
	SubmitBulk(ctx context.Context, commands []domain.Command) (*domain.BulkResponse, error)
}
