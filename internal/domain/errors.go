package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado en un único punto (ver interfaces/http/errors.go).
var (
	// Validación (400)
	ErrValidation = errors.New("entrada inválida")

	// Conflictos (400)
	ErrSetupAlreadyComplete = errors.New("la configuración inicial ya fue completada")
	ErrRegistrationClosed   = errors.New("registro cerrado: ya existe un administrador")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	// ErrAdminAlreadyExists lo devuelve el store cuando el índice de administrador único rechaza un insert.
	ErrAdminAlreadyExists = errors.New("ya existe un administrador")

	// No autorizado (401 / 403)
	ErrInvalidCredentials       = errors.New("usuario o contraseña inválidos")
	ErrInvalidToken             = errors.New("token inválido o expirado")
	ErrInvalidRegistrationToken = errors.New("token de registro inválido")
	ErrIdentityNotFound         = errors.New("usuario no encontrado")
	ErrForbidden                = errors.New("acceso denegado")

	// No encontrado (404)
	ErrAdminNotFound = errors.New("administrador no encontrado")
)
