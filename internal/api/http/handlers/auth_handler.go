package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutoring-service/internal/api/dto"
	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/service"
	apperrors "github.com/spec-kit/tutoring-service/pkg/util"
)

// AuthHandler exposes login, refresh, logout and registration.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return fiber.NewError(http.StatusBadRequest, "email, password, fullName required")
	}

	pair, err := h.auth.Register(c.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.NewTokenPairResponse(pair))
}

// Login handles POST /auth/login. The three rejection cases differ only in
// status code; the body shape and message stay the same so nothing beyond
// the status leaks.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return apperrors.NewUnauthorized("authentication failed")
		case errors.Is(err, auth.ErrAccountBlocked):
			return apperrors.NewLocked("authentication failed")
		case errors.Is(err, auth.ErrAccountDisabled):
			return apperrors.NewForbidden("authentication failed")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.NewTokenPairResponse(pair))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refreshToken required")
	}

	pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenRevoked),
			errors.Is(err, auth.ErrTokenExpired),
			errors.Is(err, auth.ErrTokenMalformed),
			errors.Is(err, auth.ErrTokenSignatureInvalid),
			errors.Is(err, auth.ErrInvalidToken):
			return apperrors.NewUnauthorized("invalid refresh token")
		}
		return apperrors.MapError(err)
	}

	return c.JSON(dto.NewTokenPairResponse(pair))
}

// Logout handles POST /auth/logout. Best-effort revocation: it never fails
// the caller, whatever tokens were (or were not) presented.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	_ = c.BodyParser(&req)

	accessToken := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	h.auth.Logout(accessToken, req.RefreshToken)

	return c.SendStatus(http.StatusNoContent)
}
