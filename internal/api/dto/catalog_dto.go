package dto

import (
	"time"

	"github.com/spec-kit/tutoring-service/internal/domain"
)

// TraitRequest payload for creating a trait.
type TraitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TraitResponse wire shape for a trait.
type TraitResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewTraitResponse maps a domain trait.
func NewTraitResponse(t *domain.Trait) TraitResponse {
	return TraitResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

// NewTraitListResponse maps a slice of domain traits.
func NewTraitListResponse(traits []*domain.Trait) []TraitResponse {
	out := make([]TraitResponse, 0, len(traits))
	for _, t := range traits {
		out = append(out, NewTraitResponse(t))
	}
	return out
}

// EvaluationRequest payload for recording an evaluation.
type EvaluationRequest struct {
	TraitID int64  `json:"traitId"`
	Score   int    `json:"score"`
	Notes   string `json:"notes"`
}

// EvaluationResponse wire shape for an evaluation.
type EvaluationResponse struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"studentId"`
	TraitID   int64     `json:"traitId"`
	Score     int       `json:"score"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvaluationResponse maps a domain evaluation.
func NewEvaluationResponse(e *domain.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:        e.ID,
		StudentID: e.StudentID,
		TraitID:   e.TraitID,
		Score:     e.Score,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

// NewEvaluationListResponse maps a slice of domain evaluations.
func NewEvaluationListResponse(evals []*domain.Evaluation) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(evals))
	for _, e := range evals {
		out = append(out, NewEvaluationResponse(e))
	}
	return out
}

// PlanRequest payload for creating or updating a plan.
type PlanRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"priceCents"`
	LessonsPerWeek int    `json:"lessonsPerWeek"`
	Active         *bool  `json:"active,omitempty"`
}

// PlanResponse wire shape for a plan.
type PlanResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"priceCents"`
	LessonsPerWeek int    `json:"lessonsPerWeek"`
	Active         bool   `json:"active"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		LessonsPerWeek: p.LessonsPerWeek,
		Active:         p.Active,
	}
}

// NewPlanListResponse maps a slice of domain plans.
func NewPlanListResponse(plans []*domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, NewPlanResponse(p))
	}
	return out
}

// TeacherRequest payload for profile updates.
type TeacherRequest struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio"`
}

// TeacherResponse wire shape for a teacher profile.
type TeacherResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Bio      string `json:"bio,omitempty"`
}

// NewTeacherResponse maps a domain teacher.
func NewTeacherResponse(t *domain.Teacher) TeacherResponse {
	return TeacherResponse{ID: t.ID, FullName: t.FullName, Bio: t.Bio}
}

// NewTeacherListResponse maps a slice of domain teachers.
func NewTeacherListResponse(teachers []*domain.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, NewTeacherResponse(t))
	}
	return out
}
