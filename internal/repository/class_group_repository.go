package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// ClassGroupRepository defines persistence access for class groups and
// their memberships.
type ClassGroupRepository interface {
	Create(ctx context.Context, group *domain.ClassGroup) error
	Update(ctx context.Context, group *domain.ClassGroup) error
	Delete(ctx context.Context, teacherID, id int64) error
	GetByID(ctx context.Context, teacherID, id int64) (*domain.ClassGroup, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.ClassGroup, error)
	AddStudent(ctx context.Context, groupID, studentID int64) error
	RemoveStudent(ctx context.Context, groupID, studentID int64) error
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	CountByTeacher(ctx context.Context, teacherID int64) (int64, error)
}

type classGroupRepository struct {
	pool *pgxpool.Pool
}

// NewClassGroupRepository returns a Postgres-backed implementation.
func NewClassGroupRepository(pool *pgxpool.Pool) ClassGroupRepository {
	return &classGroupRepository{pool: pool}
}

func (r *classGroupRepository) Create(ctx context.Context, group *domain.ClassGroup) error {
	const query = `
        INSERT INTO class_groups (teacher_id, name, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		group.TeacherID,
		group.Name,
		group.Description,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
}

func (r *classGroupRepository) Update(ctx context.Context, group *domain.ClassGroup) error {
	const query = `
        UPDATE class_groups SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND teacher_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		group.Name,
		group.Description,
		group.ID,
		group.TeacherID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *classGroupRepository) Delete(ctx context.Context, teacherID, id int64) error {
	const query = `DELETE FROM class_groups WHERE id=$1 AND teacher_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, teacherID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *classGroupRepository) GetByID(ctx context.Context, teacherID, id int64) (*domain.ClassGroup, error) {
	const query = `
        SELECT id, teacher_id, name, description, created_at, updated_at
        FROM class_groups WHERE id=$1 AND teacher_id=$2`

	var g domain.ClassGroup
	if err := r.pool.QueryRow(ctx, query, id, teacherID).Scan(
		&g.ID,
		&g.TeacherID,
		&g.Name,
		&g.Description,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *classGroupRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.ClassGroup, error) {
	const query = `
        SELECT id, teacher_id, name, description, created_at, updated_at
        FROM class_groups WHERE teacher_id=$1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.ClassGroup
	for rows.Next() {
		var g domain.ClassGroup
		if err := rows.Scan(&g.ID, &g.TeacherID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *classGroupRepository) AddStudent(ctx context.Context, groupID, studentID int64) error {
	const query = `
        INSERT INTO class_group_students (group_id, student_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id, student_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, groupID, studentID)
	return err
}

func (r *classGroupRepository) RemoveStudent(ctx context.Context, groupID, studentID int64) error {
	const query = `DELETE FROM class_group_students WHERE group_id=$1 AND student_id=$2`

	cmd, err := r.pool.Exec(ctx, query, groupID, studentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *classGroupRepository) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	const query = `SELECT student_id FROM class_group_students WHERE group_id=$1`

	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *classGroupRepository) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM class_groups WHERE teacher_id=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, teacherID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
