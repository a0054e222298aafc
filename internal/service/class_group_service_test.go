package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/events"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

type fakeGroupRepo struct {
	mu      sync.Mutex
	groups  map[int64]*domain.ClassGroup
	members map[int64][]int64
	nextID  int64
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  make(map[int64]*domain.ClassGroup),
		members: make(map[int64][]int64),
		nextID:  1,
	}
}

func (r *fakeGroupRepo) Create(_ context.Context, group *domain.ClassGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	group.ID = r.nextID
	r.nextID++
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) Update(_ context.Context, group *domain.ClassGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[group.ID]; !ok {
		return repository.ErrNotFound
	}
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, teacherID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok || g.TeacherID != teacherID {
		return repository.ErrNotFound
	}
	delete(r.groups, id)
	delete(r.members, id)
	return nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, teacherID, id int64) (*domain.ClassGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok || g.TeacherID != teacherID {
		return nil, repository.ErrNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) ListByTeacher(_ context.Context, teacherID int64) ([]*domain.ClassGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ClassGroup
	for _, g := range r.groups {
		if g.TeacherID == teacherID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) AddStudent(_ context.Context, groupID, studentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.members[groupID] {
		if id == studentID {
			return nil
		}
	}
	r.members[groupID] = append(r.members[groupID], studentID)
	return nil
}

func (r *fakeGroupRepo) RemoveStudent(_ context.Context, groupID, studentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.members[groupID]
	for i, id := range ids {
		if id == studentID {
			r.members[groupID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGroupRepo) MemberIDs(_ context.Context, groupID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.members[groupID]...), nil
}

func (r *fakeGroupRepo) CountByTeacher(_ context.Context, teacherID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, g := range r.groups {
		if g.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[int64]*domain.Student
	nextID   int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[int64]*domain.Student), nextID: 1}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	student.ID = r.nextID
	r.nextID++
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, student *domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return repository.ErrNotFound
	}
	r.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, teacherID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok || s.TeacherID != teacherID {
		return repository.ErrNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, teacherID, id int64) (*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok || s.TeacherID != teacherID {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) ListByTeacher(_ context.Context, teacherID int64) ([]*domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Student
	for _, s := range r.students {
		if s.TeacherID == teacherID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) AssignPlan(_ context.Context, teacherID, studentID, planID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[studentID]
	if !ok || s.TeacherID != teacherID {
		return repository.ErrNotFound
	}
	s.PlanID = &planID
	return nil
}

func (r *fakeStudentRepo) CountByTeacher(_ context.Context, teacherID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.students {
		if s.TeacherID == teacherID {
			n++
		}
	}
	return n, nil
}

type fakeEvaluationRepo struct {
	mu       sync.Mutex
	averages map[int64]float64
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{averages: make(map[int64]float64)}
}

func (r *fakeEvaluationRepo) Create(_ context.Context, _ *domain.Evaluation) error { return nil }

func (r *fakeEvaluationRepo) ListByStudent(_ context.Context, _ int64) ([]*domain.Evaluation, error) {
	return nil, nil
}

func (r *fakeEvaluationRepo) AveragesForStudents(_ context.Context, studentIDs []int64) (map[int64]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]float64)
	for _, id := range studentIDs {
		if avg, ok := r.averages[id]; ok {
			out[id] = avg
		}
	}
	return out, nil
}

func (r *fakeEvaluationRepo) CountByTeacherSince(_ context.Context, _ int64, _ time.Time) (int64, error) {
	return 0, nil
}

type levelFixture struct {
	svc      *ClassGroupService
	students *fakeStudentRepo
	evals    *fakeEvaluationRepo
	groupID  int64
}

const levelTeacherID int64 = 7

func newLevelFixture(t *testing.T) *levelFixture {
	t.Helper()
	groups := newFakeGroupRepo()
	students := newFakeStudentRepo()
	evals := newFakeEvaluationRepo()
	svc := NewClassGroupService(groups, students, evals, events.NewInMemoryDispatcher(), zap.NewNop())

	group, err := svc.Create(context.Background(), levelTeacherID, "Algebra", "")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return &levelFixture{svc: svc, students: students, evals: evals, groupID: group.ID}
}

func (f *levelFixture) enroll(t *testing.T, avg float64, hasEvaluations bool) {
	t.Helper()
	student := &domain.Student{TeacherID: levelTeacherID, FullName: "Pupil"}
	if err := f.students.Create(context.Background(), student); err != nil {
		t.Fatalf("create student: %v", err)
	}
	if err := f.svc.AddStudent(context.Background(), levelTeacherID, f.groupID, student.ID); err != nil {
		t.Fatalf("add student: %v", err)
	}
	if hasEvaluations {
		f.evals.averages[student.ID] = avg
	}
}

func TestLevelEmptyGroupIsBeginner(t *testing.T) {
	f := newLevelFixture(t)

	level, err := f.svc.Level(context.Background(), levelTeacherID, f.groupID)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if level != domain.GroupLevelBeginner {
		t.Errorf("level = %q, want BEGINNER", level)
	}
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		averages []float64
		want     domain.GroupLevel
	}{
		{"exactly three is beginner", []float64{3}, domain.GroupLevelBeginner},
		{"just above three is intermediate", []float64{3.5}, domain.GroupLevelIntermediate},
		{"exactly seven is intermediate", []float64{7}, domain.GroupLevelIntermediate},
		{"above seven is advanced", []float64{7.5}, domain.GroupLevelAdvanced},
		{"mixed members average out", []float64{10, 2}, domain.GroupLevelIntermediate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newLevelFixture(t)
			for _, avg := range tc.averages {
				f.enroll(t, avg, true)
			}

			level, err := f.svc.Level(context.Background(), levelTeacherID, f.groupID)
			if err != nil {
				t.Fatalf("level: %v", err)
			}
			if level != tc.want {
				t.Errorf("level = %q, want %q", level, tc.want)
			}
		})
	}
}

func TestLevelUnevaluatedMemberCountsAsZero(t *testing.T) {
	f := newLevelFixture(t)
	f.enroll(t, 10, true)
	f.enroll(t, 0, false)

	// (10 + 0) / 2 = 5, intermediate.
	level, err := f.svc.Level(context.Background(), levelTeacherID, f.groupID)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if level != domain.GroupLevelIntermediate {
		t.Errorf("level = %q, want INTERMEDIATE", level)
	}
}

func TestLevelScopedByTeacher(t *testing.T) {
	f := newLevelFixture(t)

	if _, err := f.svc.Level(context.Background(), levelTeacherID+1, f.groupID); !repository.IsNotFound(err) {
		t.Errorf("foreign teacher err = %v, want not found", err)
	}
}
