package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// PlansHandler exposes the subscription plan catalog. Reads are public;
// writes are admin-only (enforced by route guards).
type PlansHandler struct {
	plans *service.PlanService
}

// NewPlansHandler constructs handler.
func NewPlansHandler(plans *service.PlanService) *PlansHandler {
	return &PlansHandler{plans: plans}
}

// List handles GET /plans.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", true)
	plans, err := h.plans.List(c.Context(), activeOnly)
	if err != nil {
		return mapRepoError("plan", err)
	}
	return c.JSON(dto.NewPlanListResponse(plans))
}

// Get handles GET /plans/:id.
func (h *PlansHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.plans.Get(c.Context(), id)
	if err != nil {
		return mapRepoError("plan", err)
	}
	return c.JSON(dto.NewPlanResponse(plan))
}

// Create handles POST /plans.
func (h *PlansHandler) Create(c *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	plan, err := h.plans.Create(c.Context(), req.Name, req.Description, req.PriceCents, req.LessonsPerWeek)
	if err != nil {
		return mapRepoError("plan", err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPlanResponse(plan))
}

// Update handles PUT /plans/:id.
func (h *PlansHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	plan, err := h.plans.Update(c.Context(), id, req.Name, req.Description, req.PriceCents, req.LessonsPerWeek, active)
	if err != nil {
		return mapRepoError("plan", err)
	}
	return c.JSON(dto.NewPlanResponse(plan))
}
