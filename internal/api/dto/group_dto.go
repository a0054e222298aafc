package dto

import (
	"time"

	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// GroupRequest payload for creating or updating a class group.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupResponse wire shape for a class group; Level is present when the
// handler computed it.
type GroupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       string    `json:"level,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewGroupResponse maps a domain group without a level.
func NewGroupResponse(g *domain.ClassGroup) GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
}

// NewGroupWithLevelResponse maps a group together with its computed level.
func NewGroupWithLevelResponse(gl *service.GroupWithLevel) GroupResponse {
	resp := NewGroupResponse(gl.Group)
	resp.Level = string(gl.Level)
	return resp
}

// NewGroupListResponse maps a slice of domain groups.
func NewGroupListResponse(groups []*domain.ClassGroup) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, NewGroupResponse(g))
	}
	return out
}
