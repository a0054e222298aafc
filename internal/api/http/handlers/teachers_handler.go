package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// TeachersHandler exposes teacher profiles.
type TeachersHandler struct {
	teachers *service.TeacherService
}

// NewTeachersHandler constructs handler.
func NewTeachersHandler(teachers *service.TeacherService) *TeachersHandler {
	return &TeachersHandler{teachers: teachers}
}

// Me handles GET /teachers/me.
func (h *TeachersHandler) Me(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTeacherResponse(teacher))
}

// UpdateMe handles PUT /teachers/me.
func (h *TeachersHandler) UpdateMe(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	var req dto.TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FullName == "" {
		return fiber.NewError(http.StatusBadRequest, "fullName required")
	}

	updated, err := h.teachers.UpdateProfile(c.Context(), teacher.UserID, req.FullName, req.Bio)
	if err != nil {
		return mapRepoError("teacher", err)
	}
	return c.JSON(dto.NewTeacherResponse(updated))
}

// List handles GET /teachers (admin view).
func (h *TeachersHandler) List(c *fiber.Ctx) error {
	teachers, err := h.teachers.List(c.Context())
	if err != nil {
		return mapRepoError("teacher", err)
	}
	return c.JSON(dto.NewTeacherListResponse(teachers))
}
