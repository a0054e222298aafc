package service

import (
	"context"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
)

// TraitService manages the evaluation trait catalog.
type TraitService struct {
	traits repository.TraitRepository
}

// NewTraitService builds the service.
func NewTraitService(traits repository.TraitRepository) *TraitService {
	return &TraitService{traits: traits}
}

// Create adds a trait to the catalog.
func (s *TraitService) Create(ctx context.Context, name, description string) (*domain.Trait, error) {
	trait := &domain.Trait{Name: name, Description: description}
	if err := s.traits.Create(ctx, trait); err != nil {
		return nil, err
	}
	return trait, nil
}

// Delete removes a trait.
func (s *TraitService) Delete(ctx context.Context, id int64) error {
	return s.traits.Delete(ctx, id)
}

// List returns the full catalog.
func (s *TraitService) List(ctx context.Context) ([]*domain.Trait, error) {
	return s.traits.List(ctx)
}
