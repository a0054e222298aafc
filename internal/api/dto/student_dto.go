package dto

import (
	"time"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// StudentRequest payload for creating or updating a student.
type StudentRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AssignPlanRequest payload for putting a student on a plan.
type AssignPlanRequest struct {
	PlanID int64 `json:"planId"`
}

// StudentResponse wire shape for a student.
type StudentResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	PlanID    *int64    `json:"planId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStudentResponse maps a domain student.
func NewStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		PlanID:    s.PlanID,
		CreatedAt: s.CreatedAt,
	}
}

// NewStudentListResponse maps a slice of domain students.
func NewStudentListResponse(students []*domain.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
