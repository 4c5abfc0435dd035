// Package store elige e inicializa el almacenamiento de identidades según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/memory"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/postgres"
	"github.com/jhoicas/adminsetup-api/pkg/config"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
)

// Store repositorio de usuarios y runner transaccional sobre el mismo backend.
type Store struct {
	Users repository.UserRepository
	Tx    auth.TxRunner
	// Pool es nil con el driver memory.
	Pool *pgxpool.Pool
}

// Open conecta el backend configurado. Con postgres y AutoMigrate aplica las migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		users := memory.NewUserRepository()
		return &Store{Users: users, Tx: memory.NewTxRunner(users)}, nil

	case config.StoreDriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &Store{
			Users: postgres.NewUserRepository(pool),
			Tx:    postgres.NewTxRunner(pool),
			Pool:  pool,
		}, nil

	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Driver)
	}
}

// Close libera el pool si lo hay.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
