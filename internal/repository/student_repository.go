package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// StudentRepository defines persistence access for students. All reads are
// scoped by teacher so one tenant never sees another's pupils.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, teacherID, id int64) error
	GetByID(ctx context.Context, teacherID, id int64) (*domain.Student, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Student, error)
	AssignPlan(ctx context.Context, teacherID, studentID, planID int64) error
	CountByTeacher(ctx context.Context, teacherID int64) (int64, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (teacher_id, full_name, email, plan_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		student.TeacherID,
		student.FullName,
		student.Email,
		student.PlanID,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET full_name=$1, email=$2, updated_at=NOW()
        WHERE id=$3 AND teacher_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		student.FullName,
		student.Email,
		student.ID,
		student.TeacherID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, teacherID, id int64) error {
	const query = `DELETE FROM students WHERE id=$1 AND teacher_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, teacherID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, teacherID, id int64) (*domain.Student, error) {
	const query = `
        SELECT id, teacher_id, full_name, email, plan_id, created_at, updated_at
        FROM students WHERE id=$1 AND teacher_id=$2`

	var s domain.Student
	if err := r.pool.QueryRow(ctx, query, id, teacherID).Scan(
		&s.ID,
		&s.TeacherID,
		&s.FullName,
		&s.Email,
		&s.PlanID,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*domain.Student, error) {
	const query = `
        SELECT id, teacher_id, full_name, email, plan_id, created_at, updated_at
        FROM students WHERE teacher_id=$1 ORDER BY full_name`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.FullName, &s.Email, &s.PlanID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}

func (r *studentRepository) AssignPlan(ctx context.Context, teacherID, studentID, planID int64) error {
	const query = `
        UPDATE students SET plan_id=$1, updated_at=NOW()
        WHERE id=$2 AND teacher_id=$3`

	cmd, err := r.pool.Exec(ctx, query, planID, studentID, teacherID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *studentRepository) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM students WHERE teacher_id=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, teacherID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
