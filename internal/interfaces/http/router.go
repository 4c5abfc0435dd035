package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	Setup  *auth.SetupUseCase
	Log    *logger.Logger
	// ExposeInternalErrors incluye el detalle de errores 500 en la respuesta (solo development).
	ExposeInternalErrors bool
}

// NewApp crea la aplicación Fiber con el ErrorHandler y los middlewares comunes.
func NewApp(name string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.ExposeInternalErrors, deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	return app
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	errs := errorWriter{exposeInternal: deps.ExposeInternalErrors, log: deps.Log}
	authHandler := NewAuthHandler(deps.AuthUC, deps.Setup, errs)

	authGroup := app.Group("/api/auth")

	// Públicas
	authGroup.Get("/check-setup", authHandler.CheckSetup)
	authGroup.Post("/setup", authHandler.Setup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/create-admin", authHandler.CreateAdmin)

	// Protegidas (requieren Bearer Token)
	requireToken := AuthMiddleware(deps.AuthUC)
	authGroup.Post("/complete-setup", requireToken, authHandler.CompleteSetup)
	authGroup.Get("/verify", requireToken, authHandler.Verify)
}
