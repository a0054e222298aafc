package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// EvaluationRepository defines persistence access for trait evaluations.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *domain.Evaluation) error
	ListByStudent(ctx context.Context, studentID int64) ([]*domain.Evaluation, error)
	// AveragesForStudents returns each listed student's average score.
	// Students with no evaluations are absent from the result.
	AveragesForStudents(ctx context.Context, studentIDs []int64) (map[int64]float64, error)
	CountByTeacherSince(ctx context.Context, teacherID int64, since time.Time) (int64, error)
}

type evaluationRepository struct {
	pool *pgxpool.Pool
}

// NewEvaluationRepository returns a Postgres-backed implementation.
func NewEvaluationRepository(pool *pgxpool.Pool) EvaluationRepository {
	return &evaluationRepository{pool: pool}
}

func (r *evaluationRepository) Create(ctx context.Context, eval *domain.Evaluation) error {
	const query = `
        INSERT INTO evaluations (student_id, trait_id, score, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		eval.StudentID,
		eval.TraitID,
		eval.Score,
		eval.Notes,
	).Scan(&eval.ID, &eval.CreatedAt)
}

func (r *evaluationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*domain.Evaluation, error) {
	const query = `
        SELECT id, student_id, trait_id, score, notes, created_at
        FROM evaluations WHERE student_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []*domain.Evaluation
	for rows.Next() {
		var e domain.Evaluation
		if err := rows.Scan(&e.ID, &e.StudentID, &e.TraitID, &e.Score, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		evals = append(evals, &e)
	}
	return evals, rows.Err()
}

func (r *evaluationRepository) AveragesForStudents(ctx context.Context, studentIDs []int64) (map[int64]float64, error) {
	averages := make(map[int64]float64, len(studentIDs))
	if len(studentIDs) == 0 {
		return averages, nil
	}

	const query = `
        SELECT student_id, AVG(score)::float8
        FROM evaluations WHERE student_id = ANY($1)
        GROUP BY student_id`

	rows, err := r.pool.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var avg float64
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, err
		}
		averages[id] = avg
	}
	return averages, rows.Err()
}

func (r *evaluationRepository) CountByTeacherSince(ctx context.Context, teacherID int64, since time.Time) (int64, error) {
	const query = `
        SELECT COUNT(*)
        FROM evaluations e
        JOIN students s ON s.id = e.student_id
        WHERE s.teacher_id=$1 AND e.created_at >= $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, teacherID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
