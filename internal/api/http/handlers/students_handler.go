package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// StudentsHandler exposes the teacher's student roster.
type StudentsHandler struct {
	students *service.StudentService
	teachers *service.TeacherService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(students *service.StudentService, teachers *service.TeacherService) *StudentsHandler {
	return &StudentsHandler{students: students, teachers: teachers}
}

// Create handles POST /students.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FullName == "" {
		return fiber.NewError(http.StatusBadRequest, "fullName required")
	}

	student, err := h.students.Create(c.Context(), teacher.ID, req.FullName, req.Email)
	if err != nil {
		return mapRepoError("student", err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewStudentResponse(student))
}

// List handles GET /students.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	students, err := h.students.List(c.Context(), teacher.ID)
	if err != nil {
		return mapRepoError("student", err)
	}
	return c.JSON(dto.NewStudentListResponse(students))
}

// Get handles GET /students/:id.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	student, err := h.students.Get(c.Context(), teacher.ID, id)
	if err != nil {
		return mapRepoError("student", err)
	}
	return c.JSON(dto.NewStudentResponse(student))
}

// Update handles PUT /students/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FullName == "" {
		return fiber.NewError(http.StatusBadRequest, "fullName required")
	}

	student, err := h.students.Update(c.Context(), teacher.ID, id, req.FullName, req.Email)
	if err != nil {
		return mapRepoError("student", err)
	}
	return c.JSON(dto.NewStudentResponse(student))
}

// Delete handles DELETE /students/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.students.Delete(c.Context(), teacher.ID, id); err != nil {
		return mapRepoError("student", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignPlan handles POST /students/:id/plan.
func (h *StudentsHandler) AssignPlan(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PlanID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "planId required")
	}

	if err := h.students.AssignPlan(c.Context(), teacher.ID, id, req.PlanID); err != nil {
		return mapRepoError("plan", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
