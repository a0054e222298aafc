package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/domain"
	"github.com/spec-kit/tutoring-service/internal/repository"
	"github.com/spec-kit/tutoring-service/internal/service"
	apperrors "github.com/spec-kit/tutoring-service/pkg/util"
)

// currentTeacher resolves the authenticated caller's teacher profile.
// Tenant scoping for students, groups and evaluations hangs off this.
func currentTeacher(c *fiber.Ctx, teachers *service.TeacherService) (*domain.Teacher, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized(http.StatusText(http.StatusUnauthorized))
	}
	teacher, err := teachers.GetByUserID(c.Context(), principal.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewForbidden("teacher profile required")
		}
		return nil, apperrors.MapError(err)
	}
	return teacher, nil
}

// pathID parses a numeric path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// mapRepoError turns repository lookups into 404s and everything else into
// the standard domain error shape.
func mapRepoError(resource string, err error) error {
	if repository.IsNotFound(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
