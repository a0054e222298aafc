package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// PlanRepository defines persistence access for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Update(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Plan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	const query = `
        INSERT INTO plans (name, description, price_cents, lessons_per_week, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Description,
		plan.PriceCents,
		plan.LessonsPerWeek,
		plan.Active,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	const query = `
        UPDATE plans SET name=$1, description=$2, price_cents=$3, lessons_per_week=$4, active=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Description,
		plan.PriceCents,
		plan.LessonsPerWeek,
		plan.Active,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	const query = `
        SELECT id, name, description, price_cents, lessons_per_week, active, created_at, updated_at
        FROM plans WHERE id=$1`

	var p domain.Plan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.LessonsPerWeek,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Plan, error) {
	query := `
        SELECT id, name, description, price_cents, lessons_per_week, active, created_at, updated_at
        FROM plans`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY price_cents`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.LessonsPerWeek, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}
