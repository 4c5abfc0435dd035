package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/adminsetup-api/internal/application/dto"
)

// LocalUserID key en c.Locals con el id de la identidad autenticada.
const LocalUserID = "user_id"

// tokenResolver contrato mínimo que necesita el middleware. Lo implementa *auth.AuthUseCase.
type tokenResolver interface {
	ResolveToken(token string) (string, error)
}

// AuthMiddleware valida el Bearer Token JWT y guarda el UserID en c.Locals.
// No consulta el store: cada handler re-resuelve la identidad.
func AuthMiddleware(resolver tokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := resolver.ResolveToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
