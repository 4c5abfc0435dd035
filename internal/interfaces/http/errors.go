package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/adminsetup-api/internal/application/dto"
	"github.com/jhoicas/adminsetup-api/internal/domain"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable traduce errores de dominio a HTTP. El orden importa solo si un error envuelve a otro.
var errorTable = []errorMapping{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrSetupAlreadyComplete, fiber.StatusBadRequest, "SETUP_ALREADY_COMPLETE"},
	{domain.ErrRegistrationClosed, fiber.StatusBadRequest, "REGISTRATION_CLOSED"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrAdminAlreadyExists, fiber.StatusBadRequest, "ADMIN_EXISTS"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrIdentityNotFound, fiber.StatusUnauthorized, "USER_NOT_FOUND"},
	{domain.ErrInvalidRegistrationToken, fiber.StatusUnauthorized, "INVALID_REGISTRATION_TOKEN"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrAdminNotFound, fiber.StatusNotFound, "ADMIN_NOT_FOUND"},
}

// errorWriter escribe respuestas de error. Fuera de development oculta el detalle de errores internos.
type errorWriter struct {
	exposeInternal bool
	log            *logger.Logger
}

func (w errorWriter) write(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	w.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	out := dto.ErrorResponse{Code: "INTERNAL", Message: "Server error"}
	if w.exposeInternal {
		out.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(out)
}

// ErrorHandler handler global de Fiber: respeta los *fiber.Error (404 de ruta, 405, etc.)
// y aplica la misma política que los handlers al resto.
func ErrorHandler(exposeInternal bool, log *logger.Logger) fiber.ErrorHandler {
	w := errorWriter{exposeInternal: exposeInternal, log: log}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return w.write(c, err)
	}
}
