package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/adminsetup-api/internal/interfaces/http"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
	"github.com/jhoicas/adminsetup-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "adminsetup-test"
	testRegToken  = "registration-secret"
	defEmail      = "admin@gmail.com"
	defPassword   = "admin123"
)

type testServer struct {
	app    *fiber.App
	repo   *memory.UserRepo
	tokens *auth.TokenIssuer
}

// buildTestApp construye la app completa sobre un store en memoria.
func buildTestApp(t *testing.T) *testServer {
	t.Helper()
	repo := memory.NewUserRepository()
	return buildTestAppWith(t, repo, memory.NewTxRunner(repo), false)
}

func buildTestAppWith(t *testing.T, repo repository.UserRepository, tx auth.TxRunner, exposeInternal bool) *testServer {
	t.Helper()
	tokens, err := auth.NewTokenIssuer(auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer})
	require.NoError(t, err)
	log := logger.Nop()
	setupUC := auth.NewSetupUseCase(repo, tx, tokens, auth.SetupConfig{
		DefaultEmail:      defEmail,
		DefaultPassword:   defPassword,
		DefaultName:       "Site Administrator",
		RegistrationToken: testRegToken,
		BcryptCost:        bcrypt.MinCost,
	}, log)
	authUC := auth.NewAuthUseCase(repo, tokens, defEmail, bcrypt.MinCost, log)

	deps := apphttp.RouterDeps{AuthUC: authUC, Setup: setupUC, Log: log, ExposeInternalErrors: exposeInternal}
	app := apphttp.NewApp("adminsetup-test", deps)
	apphttp.Router(app, deps)

	mem, _ := repo.(*memory.UserRepo)
	return &testServer{app: app, repo: mem, tokens: tokens}
}

// do lanza una petición y devuelve status y body decodificado.
func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (s *testServer) seedUser(t *testing.T, email, plain, role string) *entity.User {
	t.Helper()
	hash, err := password.Hash(plain, bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	u := &entity.User{ID: uuid.New().String(), Email: email, PasswordHash: hash, Name: "seed", Role: role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.repo.Create(context.Background(), u))
	return u
}

func admin(body map[string]interface{}) map[string]interface{} {
	m, _ := body["admin"].(map[string]interface{})
	return m
}

// brokenRepo simula una caída del store.
type brokenRepo struct{ *memory.UserRepo }

var errStoreDown = errors.New("pq: connection refused to 10.0.0.5")

func (brokenRepo) FindAdmin(context.Context) (*entity.User, error) { return nil, errStoreDown }
