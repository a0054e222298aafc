package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/service"
)

// GroupsHandler exposes class group management.
type GroupsHandler struct {
	groups   *service.ClassGroupService
	teachers *service.TeacherService
}

// NewGroupsHandler constructs handler.
func NewGroupsHandler(groups *service.ClassGroupService, teachers *service.TeacherService) *GroupsHandler {
	return &GroupsHandler{groups: groups, teachers: teachers}
}

// Create handles POST /groups.
func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	group, err := h.groups.Create(c.Context(), teacher.ID, req.Name, req.Description)
	if err != nil {
		return mapRepoError("group", err)
	}
	return c.Status(http.StatusCreated).JSON(dto.NewGroupResponse(group))
}

// List handles GET /groups.
func (h *GroupsHandler) List(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}

	groups, err := h.groups.List(c.Context(), teacher.ID)
	if err != nil {
		return mapRepoError("group", err)
	}
	return c.JSON(dto.NewGroupListResponse(groups))
}

// Get handles GET /groups/:id; the response carries the computed level.
func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	group, err := h.groups.Get(c.Context(), teacher.ID, id)
	if err != nil {
		return mapRepoError("group", err)
	}
	return c.JSON(dto.NewGroupWithLevelResponse(group))
}

// Update handles PUT /groups/:id.
func (h *GroupsHandler) Update(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}

	group, err := h.groups.Update(c.Context(), teacher.ID, id, req.Name, req.Description)
	if err != nil {
		return mapRepoError("group", err)
	}
	return c.JSON(dto.NewGroupResponse(group))
}

// Delete handles DELETE /groups/:id.
func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.groups.Delete(c.Context(), teacher.ID, id); err != nil {
		return mapRepoError("group", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddStudent handles POST /groups/:id/students/:studentId.
func (h *GroupsHandler) AddStudent(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}

	if err := h.groups.AddStudent(c.Context(), teacher.ID, groupID, studentID); err != nil {
		return mapRepoError("group", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// RemoveStudent handles DELETE /groups/:id/students/:studentId.
func (h *GroupsHandler) RemoveStudent(c *fiber.Ctx) error {
	teacher, err := currentTeacher(c, h.teachers)
	if err != nil {
		return err
	}
	groupID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	studentID, err := pathID(c, "studentId")
	if err != nil {
		return err
	}

	if err := h.groups.RemoveStudent(c.Context(), teacher.ID, groupID, studentID); err != nil {
		return mapRepoError("group", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
