package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// EvaluationsHandler records and lists trait evaluations per student.
type EvaluationsHandler struct {
	evaluations *service.EvaluationService
	teachers    *service.TeacherService
}

// NewEvaluationsHandler constructs handler.
func NewEvaluationsHandler(evaluations *service.EvaluationService, teachers *service.TeacherService) *EvaluationsHandler {
	return &EvaluationsHandler{evaluations: evaluations, teachers: teachers}
}

// Record handles POST /students/:id/evaluations.
func (h *EvaluationsHandler) Record(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.EvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.TraitID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "traitId required")
	}

	eval, err := h.evaluations.Record(c.Context(), teacher.ID, studentID, req.TraitID, req.Score, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrScoreOutOfRange) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return mapRepoError("evaluation", err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEvaluationResponse(eval))
}

// List handles GET /students/:id/evaluations.
func (h *EvaluationsHandler) List(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	evals, err := h.evaluations.ListForStudent(c.Context(), teacher.ID, studentID)
	if err != nil {
		return mapRepoError("student", err)
	}
	return c.JSON(dto.NewEvaluationListResponse(evals))
}
