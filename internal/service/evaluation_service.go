package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// ErrScoreOutOfRange rejects scores outside the 0-10 integer scale.
var ErrScoreOutOfRange = fmt.Errorf("score must be between 0 and 10")

// EvaluationService records trait evaluations for students.
type EvaluationService struct {
	evaluations repository.EvaluationRepository
	students    repository.StudentRepository
	traits      repository.TraitRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewEvaluationService builds the service.
func NewEvaluationService(evaluations repository.EvaluationRepository, students repository.StudentRepository, traits repository.TraitRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		evaluations: evaluations,
		students:    students,
		traits:      traits,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Record scores a student on a trait.
func (s *EvaluationService) Record(ctx context.Context, teacherID, studentID, traitID int64, score int, notes string) (*domain.Evaluation, error) {
	if score < 0 || score > 10 {
		return nil, ErrScoreOutOfRange
	}
	student, err := s.students.GetByID(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	trait, err := s.traits.GetByID(ctx, traitID)
	if err != nil {
		return nil, err
	}

	eval := &domain.Evaluation{
		StudentID: studentID,
		TraitID:   traitID,
		Score:     score,
		Notes:     notes,
	}
	if err := s.evaluations.Create(ctx, eval); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(
		events.EventEvaluationRecorded,
		teacherID,
		fmt.Sprintf("student %q scored %d on %q", student.FullName, score, trait.Name),
		events.EvaluationRecordedPayload{
			EvaluationID: eval.ID,
			StudentID:    studentID,
			TraitID:      traitID,
			Score:        score,
		},
	))
	return eval, nil
}

// ListForStudent returns a student's evaluation history.
func (s *EvaluationService) ListForStudent(ctx context.Context, teacherID, studentID int64) ([]*domain.Evaluation, error) {
	if _, err := s.students.GetByID(ctx, teacherID, studentID); err != nil {
		return nil, err
	}
	return s.evaluations.ListByStudent(ctx, studentID)
}
