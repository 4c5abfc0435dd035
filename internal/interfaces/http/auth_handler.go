package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/application/dto"
)

// AuthHandler maneja configuración inicial, login, verify y registro legacy.
type AuthHandler struct {
	auth  *auth.AuthUseCase
	setup *auth.SetupUseCase
	errs  errorWriter
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authUC *auth.AuthUseCase, setupUC *auth.SetupUseCase, errs errorWriter) *AuthHandler {
	return &AuthHandler{auth: authUC, setup: setupUC, errs: errs}
}

func (h *AuthHandler) invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// CheckSetup godoc
// @Summary      Estado de la configuración inicial
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SetupStatusResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/auth/check-setup [get]
func (h *AuthHandler) CheckSetup(c *fiber.Ctx) error {
	out, err := h.setup.CheckStatus(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Setup godoc
// @Summary      Crear admin con credenciales por defecto
// @Tags         auth
// @Produce      json
// @Success      201  {object}  dto.AuthResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/setup [post]
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	out, err := h.setup.Bootstrap(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateAdmin godoc
// @Summary      Crear admin por defecto sin emitir token (legacy)
// @Tags         auth
// @Produce      json
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/create-admin [post]
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	out, err := h.setup.CreateAdmin(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CompleteSetup godoc
// @Summary      Reemplazar credenciales por defecto
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompleteSetupRequest  true  "newUsername, newPassword, newName"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/complete-setup [post]
func (h *AuthHandler) CompleteSetup(c *fiber.Ctx) error {
	var in dto.CompleteSetupRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.setup.CompleteSetup(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar token y obtener identidad
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.VerifyResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	out, err := h.auth.Verify(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión (solo admin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username (email), password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar admin con secreto de registro (legacy)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "registrationToken, name, email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.invalidBody(c)
	}
	out, err := h.setup.Register(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
