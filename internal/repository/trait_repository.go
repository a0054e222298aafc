package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// TraitRepository defines persistence access for the trait catalog.
type TraitRepository interface {
	Create(ctx context.Context, trait *domain.Trait) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Trait, error)
	List(ctx context.Context) ([]*domain.Trait, error)
}

type traitRepository struct {
	pool *pgxpool.Pool
}

// NewTraitRepository returns a Postgres-backed implementation.
func NewTraitRepository(pool *pgxpool.Pool) TraitRepository {
	return &traitRepository{pool: pool}
}

func (r *traitRepository) Create(ctx context.Context, trait *domain.Trait) error {
	const query = `
        INSERT INTO traits (name, description)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, trait.Name, trait.Description).
		Scan(&trait.ID, &trait.CreatedAt)
}

func (r *traitRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM traits WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *traitRepository) GetByID(ctx context.Context, id int64) (*domain.Trait, error) {
	const query = `SELECT id, name, description, created_at FROM traits WHERE id=$1`

	var t domain.Trait
	if err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *traitRepository) List(ctx context.Context) ([]*domain.Trait, error) {
	const query = `SELECT id, name, description, created_at FROM traits ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var traits []*domain.Trait
	for rows.Next() {
		var t domain.Trait
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		traits = append(traits, &t)
	}
	return traits, rows.Err()
}
