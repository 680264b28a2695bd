package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linehaul-dispatch/internal/features/lanes/domain"
)

// PostgresLaneRepository stores lane aggregates in Postgres. The step list is
// always written as a full replacement inside one transaction.
type PostgresLaneRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLaneRepository creates a new Postgres-backed lane repository.
func NewPostgresLaneRepository(pool *pgxpool.Pool) *PostgresLaneRepository {
	return &PostgresLaneRepository{pool: pool}
}

// InitSchema creates the lane tables if they do not exist. Steps cascade on
// lane deletion.
func (r *PostgresLaneRepository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS linehaul_lanes (
			id                      BIGSERIAL PRIMARY KEY,
			origin_terminal_id      BIGINT NOT NULL,
			destination_terminal_id BIGINT NOT NULL,
			active                  BOOLEAN NOT NULL DEFAULT TRUE
		);

		CREATE TABLE IF NOT EXISTS linehaul_lane_steps (
			id              BIGSERIAL PRIMARY KEY,
			lane_id         BIGINT NOT NULL REFERENCES linehaul_lanes(id) ON DELETE CASCADE,
			sequence        INT NOT NULL CHECK (sequence > 0),
			terminal_id     BIGINT NOT NULL,
			transit_days    INT NOT NULL CHECK (transit_days >= 0),
			depart_deadline TEXT NOT NULL DEFAULT '',
			UNIQUE (lane_id, sequence)
		);
	`)
	if err != nil {
		return fmt.Errorf("lanes: init schema: %w", err)
	}
	return nil
}

// Create inserts the lane and its steps, assigning lane.ID.
func (r *PostgresLaneRepository) Create(ctx context.Context, lane *domain.Lane) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("lanes: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO linehaul_lanes (origin_terminal_id, destination_terminal_id, active)
		VALUES ($1, $2, $3)
		RETURNING id
	`, lane.OriginTerminalID, lane.DestinationTerminalID, lane.Active).Scan(&lane.ID)
	if err != nil {
		return fmt.Errorf("lanes: insert lane: %w", err)
	}

	if err := insertSteps(ctx, tx, lane.ID, lane.Steps); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("lanes: commit: %w", err)
	}
	return nil
}

// Update rewrites the lane row and replaces its step list.
func (r *PostgresLaneRepository) Update(ctx context.Context, lane *domain.Lane) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("lanes: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE linehaul_lanes
		SET origin_terminal_id = $2, destination_terminal_id = $3, active = $4
		WHERE id = $1
	`, lane.ID, lane.OriginTerminalID, lane.DestinationTerminalID, lane.Active)
	if err != nil {
		return fmt.Errorf("lanes: update lane %d: %w", lane.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLaneNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM linehaul_lane_steps WHERE lane_id = $1`, lane.ID); err != nil {
		return fmt.Errorf("lanes: clear steps for lane %d: %w", lane.ID, err)
	}
	if err := insertSteps(ctx, tx, lane.ID, lane.Steps); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("lanes: commit: %w", err)
	}
	return nil
}

// GetByID loads one lane with its steps ordered by sequence.
func (r *PostgresLaneRepository) GetByID(ctx context.Context, id int64) (*domain.Lane, error) {
	lane := &domain.Lane{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, origin_terminal_id, destination_terminal_id, active
		FROM linehaul_lanes
		WHERE id = $1
	`, id).Scan(&lane.ID, &lane.OriginTerminalID, &lane.DestinationTerminalID, &lane.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLaneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lanes: get lane %d: %w", id, err)
	}

	steps, err := r.stepsForLanes(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	lane.Steps = steps[id]
	if lane.Steps == nil {
		lane.Steps = []domain.LaneStep{}
	}
	return lane, nil
}

// List returns all lanes with their steps.
func (r *PostgresLaneRepository) List(ctx context.Context) ([]domain.Lane, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, origin_terminal_id, destination_terminal_id, active
		FROM linehaul_lanes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("lanes: list lanes: %w", err)
	}
	defer rows.Close()

	var lanes []domain.Lane
	var ids []int64
	for rows.Next() {
		var lane domain.Lane
		if err := rows.Scan(&lane.ID, &lane.OriginTerminalID, &lane.DestinationTerminalID, &lane.Active); err != nil {
			return nil, fmt.Errorf("lanes: scan lane: %w", err)
		}
		lane.Steps = []domain.LaneStep{}
		lanes = append(lanes, lane)
		ids = append(ids, lane.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lanes: list lanes: %w", err)
	}
	if len(lanes) == 0 {
		return []domain.Lane{}, nil
	}

	steps, err := r.stepsForLanes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lanes {
		if s, ok := steps[lanes[i].ID]; ok {
			lanes[i].Steps = s
		}
	}
	return lanes, nil
}

// Delete removes the lane; its steps go with it via the cascade constraint.
func (r *PostgresLaneRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM linehaul_lanes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("lanes: delete lane %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLaneNotFound
	}
	return nil
}

func (r *PostgresLaneRepository) stepsForLanes(ctx context.Context, ids []int64) (map[int64][]domain.LaneStep, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lane_id, sequence, terminal_id, transit_days, depart_deadline
		FROM linehaul_lane_steps
		WHERE lane_id = ANY($1)
		ORDER BY lane_id, sequence
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("lanes: load steps: %w", err)
	}
	defer rows.Close()

	steps := make(map[int64][]domain.LaneStep)
	for rows.Next() {
		var laneID int64
		var step domain.LaneStep
		if err := rows.Scan(&laneID, &step.Sequence, &step.TerminalID, &step.TransitDays, &step.DepartDeadline); err != nil {
			return nil, fmt.Errorf("lanes: scan step: %w", err)
		}
		steps[laneID] = append(steps[laneID], step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lanes: load steps: %w", err)
	}
	return steps, nil
}

func insertSteps(ctx context.Context, tx pgx.Tx, laneID int64, steps []domain.LaneStep) error {
	for _, step := range steps {
		_, err := tx.Exec(ctx, `
			INSERT INTO linehaul_lane_steps (lane_id, sequence, terminal_id, transit_days, depart_deadline)
			VALUES ($1, $2, $3, $4, $5)
		`, laneID, step.Sequence, step.TerminalID, step.TransitDays, step.DepartDeadline)
		if err != nil {
			return fmt.Errorf("lanes: insert step %d for lane %d: %w", step.Sequence, laneID, err)
		}
	}
	return nil
}
