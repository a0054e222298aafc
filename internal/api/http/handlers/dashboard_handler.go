package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/service"
)

// DashboardHandler serves the teacher's activity summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
	teachers  *service.TeacherService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, teachers *service.TeacherService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, teachers: teachers}
}

// Summary handles GET /dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	summary, err := h.dashboard.Summary(c.Context(), teacher.ID)
	if err != nil {
		return mapRepoError("dashboard", err)
	}
	return c.JSON(summary)
}
