package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// GroupWithLevel pairs a class group with its computed level.
type GroupWithLevel struct {
	Group *domain.ClassGroup
	Level domain.GroupLevel
}

// ClassGroupService manages class groups, their memberships and the
// computed group level.
type ClassGroupService struct {
	groups      repository.ClassGroupRepository
	students    repository.StudentRepository
	evaluations repository.EvaluationRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewClassGroupService builds the service.
func NewClassGroupService(groups repository.ClassGroupRepository, students repository.StudentRepository, evaluations repository.EvaluationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ClassGroupService {
	return &ClassGroupService{
		groups:      groups,
		students:    students,
		evaluations: evaluations,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Create adds a class group for the teacher.
func (s *ClassGroupService) Create(ctx context.Context, teacherID int64, name, description string) (*domain.ClassGroup, error) {
	group := &domain.ClassGroup{
		TeacherID:   teacherID,
		Name:        name,
		Description: description,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(
		events.EventGroupCreated,
		teacherID,
		fmt.Sprintf("class group %q created", group.Name),
		events.GroupCreatedPayload{GroupID: group.ID, Name: group.Name},
	))
	return group, nil
}

// Update changes a group's name and description.
func (s *ClassGroupService) Update(ctx context.Context, teacherID, id int64, name, description string) (*domain.ClassGroup, error) {
	group, err := s.groups.GetByID(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}
	group.Name = name
	group.Description = description
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes a group and its memberships.
func (s *ClassGroupService) Delete(ctx context.Context, teacherID, id int64) error {
	return s.groups.Delete(ctx, teacherID, id)
}

// Get fetches a group together with its computed level.
func (s *ClassGroupService) Get(ctx context.Context, teacherID, id int64) (*GroupWithLevel, error) {
	group, err := s.groups.GetByID(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}
	level, err := s.Level(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}
	return &GroupWithLevel{Group: group, Level: level}, nil
}

// List returns the teacher's groups.
func (s *ClassGroupService) List(ctx context.Context, teacherID int64) ([]*domain.ClassGroup, error) {
	return s.groups.ListByTeacher(ctx, teacherID)
}

// AddStudent enrolls a student of the same teacher into the group.
func (s *ClassGroupService) AddStudent(ctx context.Context, teacherID, groupID, studentID int64) error {
	if _, err := s.groups.GetByID(ctx, teacherID, groupID); err != nil {
		return err
	}
	student, err := s.students.GetByID(ctx, teacherID, studentID)
	if err != nil {
		return err
	}
	if err := s.groups.AddStudent(ctx, groupID, studentID); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.New(
		events.EventStudentAddedToGroup,
		teacherID,
		fmt.Sprintf("student %q joined a group", student.FullName),
		events.StudentAddedToGroupPayload{StudentID: studentID, GroupID: groupID},
	))
	return nil
}

// RemoveStudent takes a student out of the group.
func (s *ClassGroupService) RemoveStudent(ctx context.Context, teacherID, groupID, studentID int64) error {
	if _, err := s.groups.GetByID(ctx, teacherID, groupID); err != nil {
		return err
	}
	return s.groups.RemoveStudent(ctx, groupID, studentID)
}

// Level computes the group's proficiency level: each member contributes the
// average of their evaluation scores, a member with no evaluations
// contributes 0, and the member averages are averaged. An empty group is
// beginner.
func (s *ClassGroupService) Level(ctx context.Context, teacherID, groupID int64) (domain.GroupLevel, error) {
	if _, err := s.groups.GetByID(ctx, teacherID, groupID); err != nil {
		return "", err
	}

	memberIDs, err := s.groups.MemberIDs(ctx, groupID)
	if err != nil {
		return "", err
	}
	if len(memberIDs) == 0 {
		return domain.GroupLevelBeginner, nil
	}

	averages, err := s.evaluations.AveragesForStudents(ctx, memberIDs)
	if err != nil {
		return "", err
	}

	var total float64
	for _, id := range memberIDs {
		total += averages[id]
	}
	return domain.LevelForAverage(total / float64(len(memberIDs))), nil
}
