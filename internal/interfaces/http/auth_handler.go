package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invoiceflow/invoiceflow-api/internal/application/auth"
	"github.com/invoiceflow/invoiceflow-api/internal/application/dto"
)

// AuthHandler handles registration, login, token lifecycle and profile.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, password_confirm"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and password are required"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.AccessTokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Refresh(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogoutRequest  true  "refresh_token"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.LogoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Logout(in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

// ChangePassword godoc
// @Summary      Change the account password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password, new_password_confirm"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "password changed"})
}

// GetProfile returns the authenticated user's business profile.
// GET /api/auth/user
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile partially updates the business profile.
// PATCH /api/auth/user
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
