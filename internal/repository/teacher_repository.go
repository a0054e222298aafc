package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// TeacherRepository defines persistence access for teacher profiles.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *domain.Teacher) error
	Update(ctx context.Context, teacher *domain.Teacher) error
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Teacher, error)
	List(ctx context.Context) ([]*domain.Teacher, error)
}

type teacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository returns a Postgres-backed implementation.
func NewTeacherRepository(pool *pgxpool.Pool) TeacherRepository {
	return &teacherRepository{pool: pool}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *domain.Teacher) error {
	const query = `
        INSERT INTO teachers (user_id, full_name, bio)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		teacher.UserID,
		teacher.FullName,
		teacher.Bio,
	).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
}

func (r *teacherRepository) Update(ctx context.Context, teacher *domain.Teacher) error {
	const query = `
        UPDATE teachers SET full_name=$1, bio=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, teacher.FullName, teacher.Bio, teacher.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id int64) (*domain.Teacher, error) {
	const query = `
        SELECT id, user_id, full_name, bio, created_at, updated_at
        FROM teachers WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *teacherRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Teacher, error) {
	const query = `
        SELECT id, user_id, full_name, bio, created_at, updated_at
        FROM teachers WHERE user_id=$1`
	return r.scanOne(ctx, query, userID)
}

func (r *teacherRepository) List(ctx context.Context) ([]*domain.Teacher, error) {
	const query = `
        SELECT id, user_id, full_name, bio, created_at, updated_at
        FROM teachers ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*domain.Teacher
	for rows.Next() {
		var t domain.Teacher
		if err := rows.Scan(&t.ID, &t.UserID, &t.FullName, &t.Bio, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, &t)
	}
	return teachers, rows.Err()
}

func (r *teacherRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Teacher, error) {
	var t domain.Teacher
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&t.ID,
		&t.UserID,
		&t.FullName,
		&t.Bio,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
