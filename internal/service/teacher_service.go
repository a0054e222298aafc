package service

import (
	"context"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// TeacherService manages teacher profiles.
type TeacherService struct {
	teachers repository.TeacherRepository
}

// NewTeacherService builds the service.
func NewTeacherService(teachers repository.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

// GetByUserID resolves the teacher profile for an authenticated user.
func (s *TeacherService) GetByUserID(ctx context.Context, userID int64) (*domain.Teacher, error) {
	return s.teachers.GetByUserID(ctx, userID)
}

// UpdateProfile changes the caller's own profile.
func (s *TeacherService) UpdateProfile(ctx context.Context, userID int64, fullName, bio string) (*domain.Teacher, error) {
	teacher, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	teacher.FullName = fullName
	teacher.Bio = bio
	if err := s.teachers.Update(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// List returns all teacher profiles (admin view).
func (s *TeacherService) List(ctx context.Context) ([]*domain.Teacher, error) {
	return s.teachers.List(ctx)
}
