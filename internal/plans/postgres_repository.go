package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fuelstack/fuelstack/internal/hall"
	"github.com/fuelstack/fuelstack/internal/optimizer"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// The plan itself is stored as JSONB; the optimizer owns its shape.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL saved plan repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a saved plan by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*SavedPlan, error) {
	query := `
		SELECT id, hall_id, hall_name, meal_period, plan, created_at
		FROM saved_plans
		WHERE id = $1
	`

	var (
		plan     SavedPlan
		period   string
		planJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.HallID,
		&plan.HallName,
		&period,
		&planJSON,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if err := finishScan(&plan, period, planJSON); err != nil {
		return nil, err
	}
	return &plan, nil
}

// List retrieves saved plans, newest first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*SavedPlan, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, hall_id, hall_name, meal_period, plan, created_at
		FROM saved_plans
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*SavedPlan
	for rows.Next() {
		var (
			plan     SavedPlan
			period   string
			planJSON []byte
		)
		if err := rows.Scan(&plan.ID, &plan.HallID, &plan.HallName, &period, &planJSON, &plan.CreatedAt); err != nil {
			return nil, err
		}
		if err := finishScan(&plan, period, planJSON); err != nil {
			return nil, err
		}
		result = append(result, &plan)
	}
	return result, rows.Err()
}

// Create stores a new saved plan.
func (r *PostgresRepository) Create(ctx context.Context, plan *SavedPlan) error {
	planJSON, err := json.Marshal(plan.Plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	query := `
		INSERT INTO saved_plans (id, hall_id, hall_name, meal_period, plan, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query,
		plan.ID,
		plan.HallID,
		plan.HallName,
		string(plan.Period),
		planJSON,
		plan.CreatedAt,
	)
	return err
}

// Delete removes a saved plan by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func finishScan(plan *SavedPlan, period string, planJSON []byte) error {
	p, err := hall.ParseMealPeriod(period)
	if err != nil {
		return fmt.Errorf("saved plan %s: %w", plan.ID, err)
	}
	plan.Period = p

	var decoded optimizer.MealPlan
	if err := json.Unmarshal(planJSON, &decoded); err != nil {
		return fmt.Errorf("decode plan %s: %w", plan.ID, err)
	}
	plan.Plan = decoded
	return nil
}
