package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// TraitsHandler exposes the evaluation trait catalog.
type TraitsHandler struct {
	traits *service.TraitService
}

// NewTraitsHandler constructs handler.
func NewTraitsHandler(traits *service.TraitService) *TraitsHandler {
	return &TraitsHandler{traits: traits}
}

// Create handles POST /traits.
func (h *TraitsHandler) Create(c *fiber.Ctx) error {
	var req dto.TraitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	trait, err := h.traits.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		return mapRepoError("trait", err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTraitResponse(trait))
}

// List handles GET /traits.
func (h *TraitsHandler) List(c *fiber.Ctx) error {
	traits, err := h.traits.List(c.Context())
	if err != nil {
		return mapRepoError("trait", err)
	}
	return c.JSON(dto.NewTraitListResponse(traits))
}

// Delete handles DELETE /traits/:id.
func (h *TraitsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.traits.Delete(c.Context(), id); err != nil {
		return mapRepoError("trait", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
