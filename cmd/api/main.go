package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/adminsetup-api/docs"
	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/adminsetup-api/internal/interfaces/http"
	"github.com/jhoicas/adminsetup-api/pkg/config"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
)

// @title                       Admin Setup API
// @version                     1.0
// @description                 Configuración inicial del administrador, login y verificación de tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar store")
	}
	defer st.Close()

	tokens, err := auth.NewTokenIssuer(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("emisor de tokens")
	}

	authUC := auth.NewAuthUseCase(st.Users, tokens, cfg.Setup.DefaultEmail, cfg.Setup.BcryptCost, log)
	setupUC := auth.NewSetupUseCase(st.Users, st.Tx, tokens, auth.SetupConfig{
		DefaultEmail:      cfg.Setup.DefaultEmail,
		DefaultPassword:   cfg.Setup.DefaultPassword,
		DefaultName:       cfg.Setup.DefaultName,
		RegistrationToken: cfg.Setup.RegistrationToken,
		BcryptCost:        cfg.Setup.BcryptCost,
	}, log)
	if cfg.Setup.RegistrationToken == "" {
		log.Info().Msg("ADMIN_REGISTRATION_TOKEN vacío: /api/auth/register deshabilitado")
	}

	deps := httpRouter.RouterDeps{
		AuthUC:               authUC,
		Setup:                setupUC,
		Log:                  log,
		ExposeInternalErrors: cfg.App.IsDevelopment(),
	}
	app := httpRouter.NewApp(cfg.App.Name, deps)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Admin Setup API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
