package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linehaul-dispatch/internal/features/lanes/domain"
)

// mockLaneRepository records what the service asked it to persist.
type mockLaneRepository struct {
	created     *domain.Lane
	updated     *domain.Lane
	lanes       map[int64]domain.Lane
	returnError error
}

func newMockLaneRepository() *mockLaneRepository {
	return &mockLaneRepository{lanes: make(map[int64]domain.Lane)}
}

func (m *mockLaneRepository) Create(ctx context.Context, lane *domain.Lane) error {
	if m.returnError != nil {
		return m.returnError
	}
	lane.ID = 1
	m.created = lane
	return nil
}

func (m *mockLaneRepository) Update(ctx context.Context, lane *domain.Lane) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.updated = lane
	return nil
}

func (m *mockLaneRepository) GetByID(ctx context.Context, id int64) (*domain.Lane, error) {
	lane, ok := m.lanes[id]
	if !ok {
		return nil, domain.ErrLaneNotFound
	}
	return &lane, nil
}

func (m *mockLaneRepository) List(ctx context.Context) ([]domain.Lane, error) {
	return nil, m.returnError
}

func (m *mockLaneRepository) Delete(ctx context.Context, id int64) error {
	return m.returnError
}

// TestLaneService_Create_NormalizesBeforePersisting verifies unselected steps
// are dropped and the rest renumbered before the repository sees the lane.
func TestLaneService_Create_NormalizesBeforePersisting(t *testing.T) {
	repo := newMockLaneRepository()
	svc := NewLaneService(repo)

	lane := &domain.Lane{
		OriginTerminalID:      10,
		DestinationTerminalID: 20,
		Steps: []domain.LaneStep{
			{Sequence: 5, TerminalID: 11, TransitDays: 1},
			{Sequence: 9, TerminalID: 0},
			{Sequence: 2, TerminalID: 12, TransitDays: 2},
		},
	}

	err := svc.Create(context.Background(), lane)

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.Len(t, repo.created.Steps, 2)
	assert.Equal(t, 1, repo.created.Steps[0].Sequence)
	assert.Equal(t, 2, repo.created.Steps[1].Sequence)
}

// TestLaneService_Create_RejectsMissingTerminals verifies invalid lanes never
// reach the repository.
func TestLaneService_Create_RejectsMissingTerminals(t *testing.T) {
	repo := newMockLaneRepository()
	svc := NewLaneService(repo)

	err := svc.Create(context.Background(), &domain.Lane{DestinationTerminalID: 20})
	assert.ErrorIs(t, err, domain.ErrOriginTerminalRequired)

	err = svc.Create(context.Background(), &domain.Lane{OriginTerminalID: 10})
	assert.ErrorIs(t, err, domain.ErrDestinationTerminalRequired)

	assert.Nil(t, repo.created)
}

// TestLaneService_Update_Normalizes verifies the same save-time rules apply
// on update.
func TestLaneService_Update_Normalizes(t *testing.T) {
	repo := newMockLaneRepository()
	svc := NewLaneService(repo)

	lane := &domain.Lane{
		ID:                    7,
		OriginTerminalID:      10,
		DestinationTerminalID: 20,
		Steps:                 []domain.LaneStep{{TerminalID: 0}, {TerminalID: 11}},
	}

	err := svc.Update(context.Background(), lane)

	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	require.Len(t, repo.updated.Steps, 1)
	assert.Equal(t, 1, repo.updated.Steps[0].Sequence)
}

// TestLaneService_GetByID_NotFound passes the sentinel through unchanged.
func TestLaneService_GetByID_NotFound(t *testing.T) {
	svc := NewLaneService(newMockLaneRepository())

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrLaneNotFound)
}

// TestLaneService_Create_RepositoryError surfaces persistence failures.
func TestLaneService_Create_RepositoryError(t *testing.T) {
	repo := newMockLaneRepository()
	repo.returnError = errors.New("connection refused")
	svc := NewLaneService(repo)

	err := svc.Create(context.Background(), &domain.Lane{OriginTerminalID: 10, DestinationTerminalID: 20})

	assert.Error(t, err)
}
