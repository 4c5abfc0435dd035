// adminctl herramienta de operador para el estado de configuración del admin.
//
// Uso:
//
//	adminctl [--store postgres|memory] [--no-migrate] status
//	adminctl [--store postgres|memory] bootstrap
//	adminctl migrate
//
// Lee la misma configuración que cmd/api (.env, config/config.env y variables de entorno).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/postgres"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/store"
	"github.com/jhoicas/adminsetup-api/pkg/config"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
)

var errUsage = errors.New("uso: adminctl [flags] status|bootstrap|migrate")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var storeDriver, logLevel string
	var noMigrate bool

	flagSet := pflag.NewFlagSet("adminctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&storeDriver, "store", "", "driver de almacenamiento (postgres|memory); por defecto STORE_DRIVER")
	flagSet.StringVar(&logLevel, "log-level", "warn", "nivel de log")
	flagSet.BoolVar(&noMigrate, "no-migrate", false, "no aplicar migraciones al abrir el store")
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, errUsage.Error())
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if storeDriver != "" {
		cfg.DB.Driver = storeDriver
	}
	if noMigrate {
		cfg.DB.AutoMigrate = false
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Out: stderr})

	switch cmd := flagSet.Arg(0); cmd {
	case "status":
		return runStatus(ctx, cfg, log, stdout)
	case "bootstrap":
		return runBootstrap(ctx, cfg, log, stdout)
	case "migrate":
		return runMigrate(ctx, cfg, log, stdout)
	default:
		return fmt.Errorf("comando desconocido %q: %w", cmd, errUsage)
	}
}

func newSetupUseCase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*auth.SetupUseCase, *store.Store, error) {
	st, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := auth.NewTokenIssuer(auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	uc := auth.NewSetupUseCase(st.Users, st.Tx, tokens, auth.SetupConfig{
		DefaultEmail:      cfg.Setup.DefaultEmail,
		DefaultPassword:   cfg.Setup.DefaultPassword,
		DefaultName:       cfg.Setup.DefaultName,
		RegistrationToken: cfg.Setup.RegistrationToken,
		BcryptCost:        cfg.Setup.BcryptCost,
	}, log)
	return uc, st, nil
}

func runStatus(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer) error {
	uc, st, err := newSetupUseCase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	status, err := uc.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "status: %s\n", status)
	return nil
}

func runBootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer) error {
	uc, st, err := newSetupUseCase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := uc.CreateAdmin(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s (cambie la contraseña por defecto)\n", res.Message, cfg.Setup.DefaultEmail)
	return nil
}

func runMigrate(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer) error {
	if cfg.DB.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate requiere STORE_DRIVER=%s", config.StoreDriverPostgres)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}
	version, err := postgres.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	log.Info().Int64("version", version).Msg("migraciones aplicadas")
	fmt.Fprintf(out, "schema version: %d\n", version)
	return nil
}
