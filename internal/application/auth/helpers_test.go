package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/memory"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
	"github.com/jhoicas/adminsetup-api/pkg/password"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "adminsetup-test"
	testRegToken = "registration-secret"
	defEmail     = "admin@gmail.com"
	defPassword  = "admin123"
	defName      = "Site Administrator"
)

// fixture agrupa los casos de uso sobre un store en memoria.
type fixture struct {
	repo   *memory.UserRepo
	tokens *auth.TokenIssuer
	setup  *auth.SetupUseCase
	auth   *auth.AuthUseCase
}

func setupConfig() auth.SetupConfig {
	return auth.SetupConfig{
		DefaultEmail:      defEmail,
		DefaultPassword:   defPassword,
		DefaultName:       defName,
		RegistrationToken: testRegToken,
		BcryptCost:        bcrypt.MinCost,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, memory.NewUserRepository(), setupConfig())
}

func newFixtureWith(t *testing.T, repo *memory.UserRepo, cfg auth.SetupConfig) *fixture {
	t.Helper()
	tokens, err := auth.NewTokenIssuer(auth.JWTConfig{Secret: testSecret, Issuer: testIssuer})
	require.NoError(t, err)
	log := logger.Nop()
	return &fixture{
		repo:   repo,
		tokens: tokens,
		setup:  auth.NewSetupUseCase(repo, memory.NewTxRunner(repo), tokens, cfg, log),
		auth:   auth.NewAuthUseCase(repo, tokens, cfg.DefaultEmail, cfg.BcryptCost, log),
	}
}

// seedUser inserta directamente en el store un usuario con password ya hasheado.
func seedUser(t *testing.T, repo repository.UserRepository, email, plain, role string) *entity.User {
	t.Helper()
	hash, err := password.Hash(plain, bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         "seed",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// blindRepo simula que todas las lecturas previas ocurren antes de cualquier commit:
// FindAdmin siempre responde "no hay admin".
type blindRepo struct {
	*memory.UserRepo
}

func (blindRepo) FindAdmin(context.Context) (*entity.User, error) { return nil, nil }
