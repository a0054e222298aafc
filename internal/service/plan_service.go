package service

import (
	"context"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// PlanService manages the subscription plan catalog.
type PlanService struct {
	plans repository.PlanRepository
}

// NewPlanService builds the service.
func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// Create adds a plan to the catalog.
func (s *PlanService) Create(ctx context.Context, name, description string, priceCents int64, lessonsPerWeek int) (*domain.Plan, error) {
	plan := &domain.Plan{
		Name:           name,
		Description:    description,
		PriceCents:     priceCents,
		LessonsPerWeek: lessonsPerWeek,
		Active:         true,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Update changes plan fields, including activation.
func (s *PlanService) Update(ctx context.Context, id int64, name, description string, priceCents int64, lessonsPerWeek int, active bool) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Name = name
	plan.Description = description
	plan.PriceCents = priceCents
	plan.LessonsPerWeek = lessonsPerWeek
	plan.Active = active
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Get fetches one plan.
func (s *PlanService) Get(ctx context.Context, id int64) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

// List returns the catalog; activeOnly hides retired plans.
func (s *PlanService) List(ctx context.Context, activeOnly bool) ([]*domain.Plan, error) {
	return s.plans.List(ctx, activeOnly)
}
