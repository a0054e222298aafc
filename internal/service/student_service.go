package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// StudentService manages a teacher's students.
type StudentService struct {
	students   repository.StudentRepository
	plans      repository.PlanRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStudentService builds the service.
func NewStudentService(students repository.StudentRepository, plans repository.PlanRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StudentService {
	return &StudentService{students: students, plans: plans, dispatcher: dispatcher, logger: logger}
}

// Create adds a student to the teacher's roster.
func (s *StudentService) Create(ctx context.Context, teacherID int64, fullName, email string) (*domain.Student, error) {
	student := &domain.Student{
		TeacherID: teacherID,
		FullName:  fullName,
		Email:     domain.NormalizeEmail(email),
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(
		events.EventStudentCreated,
		teacherID,
		fmt.Sprintf("student %q enrolled", student.FullName),
		events.StudentCreatedPayload{StudentID: student.ID, FullName: student.FullName},
	))
	return student, nil
}

// Update changes a student's profile fields.
func (s *StudentService) Update(ctx context.Context, teacherID, id int64, fullName, email string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}
	student.FullName = fullName
	student.Email = domain.NormalizeEmail(email)
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student from the roster.
func (s *StudentService) Delete(ctx context.Context, teacherID, id int64) error {
	return s.students.Delete(ctx, teacherID, id)
}

// Get fetches one student.
func (s *StudentService) Get(ctx context.Context, teacherID, id int64) (*domain.Student, error) {
	return s.students.GetByID(ctx, teacherID, id)
}

// List returns the teacher's roster.
func (s *StudentService) List(ctx context.Context, teacherID int64) ([]*domain.Student, error) {
	return s.students.ListByTeacher(ctx, teacherID)
}

// AssignPlan puts a student on a subscription plan. The plan must exist and
// be active.
func (s *StudentService) AssignPlan(ctx context.Context, teacherID, studentID, planID int64) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if !plan.Active {
		return fmt.Errorf("plan %d is not active", planID)
	}

	if err := s.students.AssignPlan(ctx, teacherID, studentID, planID); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.New(
		events.EventPlanAssigned,
		teacherID,
		fmt.Sprintf("plan %q assigned", plan.Name),
		events.PlanAssignedPayload{StudentID: studentID, PlanID: planID},
	))
	return nil
}
