package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: check-setup -> setup -> complete-setup -> verify
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto(t *testing.T) {
	s := buildTestApp(t)

	status, body := s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["setupComplete"])
	creds, ok := body["defaultCredentials"].(map[string]interface{})
	require.True(t, ok, "sin admin se devuelven las credenciales por defecto")
	assert.Equal(t, defEmail, creds["username"])
	assert.Equal(t, defPassword, creds["password"])

	status, body = s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, admin(body)["isSetup"])
	assert.Equal(t, "admin", admin(body)["role"])
	bootToken, _ := body["token"].(string)
	require.NotEmpty(t, bootToken)

	status, body = s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["setupComplete"])
	assert.Equal(t, true, body["needsCredentialSetup"])

	status, body = s.do(t, http.MethodPost, "/api/auth/complete-setup", bootToken, map[string]string{
		"newUsername": "ops@example.com",
		"newPassword": "longpassw0rd",
		"newName":     "Ops",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, admin(body)["isSetup"])
	assert.Equal(t, "ops@example.com", admin(body)["email"])
	newToken, _ := body["token"].(string)
	require.NotEmpty(t, newToken)

	status, body = s.do(t, http.MethodGet, "/api/auth/verify", newToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, admin(body)["isSetup"])
	assert.Equal(t, "Ops", admin(body)["name"])

	status, body = s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["needsCredentialSetup"])
	assert.Contains(t, body, "defaultCredentials")
	assert.Nil(t, body["defaultCredentials"], "con credenciales propias defaultCredentials es null")
}

func TestSetup_SegundaVezRetorna400(t *testing.T) {
	s := buildTestApp(t)
	status, _ := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SETUP_ALREADY_COMPLETE", body["code"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, 1, s.repo.Len())
}

func TestCreateAdmin_Legacy(t *testing.T) {
	s := buildTestApp(t)
	status, body := s.do(t, http.MethodPost, "/api/auth/create-admin", "", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Admin created successfully", body["message"])
	assert.NotContains(t, body, "token")

	status, _ = s.do(t, http.MethodPost, "/api/auth/create-admin", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// complete-setup
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteSetup_SinToken_Retorna401(t *testing.T) {
	s := buildTestApp(t)
	status, _ := s.do(t, http.MethodPost, "/api/auth/complete-setup", "", map[string]string{
		"newUsername": "ops@example.com", "newPassword": "longpassw0rd",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCompleteSetup_Validacion_Retorna400(t *testing.T) {
	s := buildTestApp(t)
	_, body := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	tok := body["token"].(string)

	status, body := s.do(t, http.MethodPost, "/api/auth/complete-setup", tok, map[string]string{
		"newUsername": "ops@example.com", "newPassword": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, _ = s.do(t, http.MethodPost, "/api/auth/complete-setup", tok, map[string]string{"newPassword": "longpassw0rd"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCompleteSetup_EmailPorDefecto_Retorna400(t *testing.T) {
	s := buildTestApp(t)
	_, body := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	tok := body["token"].(string)

	status, body := s.do(t, http.MethodPost, "/api/auth/complete-setup", tok, map[string]string{
		"newUsername": "Admin@Gmail.com", "newPassword": "longpassw0rd",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	_, body = s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	assert.Equal(t, true, body["needsCredentialSetup"])
}

func TestCompleteSetup_EmailDuplicado_Retorna400(t *testing.T) {
	s := buildTestApp(t)
	_, body := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	tok := body["token"].(string)
	s.seedUser(t, "taken@example.com", "whatever1", entity.RoleUser)

	status, body := s.do(t, http.MethodPost, "/api/auth/complete-setup", tok, map[string]string{
		"newUsername": "taken@example.com", "newPassword": "longpassw0rd",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])
}

func TestCompleteSetup_AdminInexistente_Retorna404(t *testing.T) {
	s := buildTestApp(t)
	tok, err := s.tokens.Issue("00000000-0000-0000-0000-00000000dead")
	require.NoError(t, err)

	status, body := s.do(t, http.MethodPost, "/api/auth/complete-setup", tok, map[string]string{
		"newUsername": "ops@example.com", "newPassword": "longpassw0rd",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ADMIN_NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// login / verify
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	s := buildTestApp(t)
	status, _ := s.do(t, http.MethodPost, "/api/auth/setup", "", nil)
	require.Equal(t, http.StatusCreated, status)
	s.seedUser(t, "reader@example.com", "readerpass", entity.RoleUser)

	t.Run("correcto y verify coincide", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": defEmail, "password": defPassword})
		require.Equal(t, http.StatusOK, status)
		loginAdmin := admin(body)

		status, vbody := s.do(t, http.MethodGet, "/api/auth/verify", body["token"].(string), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, loginAdmin["id"], admin(vbody)["id"])
		assert.Equal(t, loginAdmin["isSetup"], admin(vbody)["isSetup"])
	})

	t.Run("campos faltantes", func(t *testing.T) {
		status, _ := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": defEmail})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("credenciales inválidas", func(t *testing.T) {
		status, wrong := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": defEmail, "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, status)
		status, unknown := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost@example.com", "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, wrong, unknown, "no se distingue usuario inexistente de password incorrecto")
	})

	t.Run("no admin", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "reader@example.com", "password": "readerpass"})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN", body["code"])
	})

	t.Run("body inválido", func(t *testing.T) {
		status, body := s.do(t, http.MethodPost, "/api/auth/login", "", "no-es-un-objeto")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_BODY", body["code"])
	})
}

func TestVerify_IdentidadBorrada_Retorna401(t *testing.T) {
	s := buildTestApp(t)
	tok, err := s.tokens.Issue("00000000-0000-0000-0000-00000000dead")
	require.NoError(t, err)

	status, body := s.do(t, http.MethodGet, "/api/auth/verify", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// register (legacy)
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister(t *testing.T) {
	s := buildTestApp(t)
	req := map[string]string{
		"registrationToken": testRegToken,
		"name":              "Owner",
		"email":             "owner@example.com",
		"password":          "longpassw0rd",
	}

	bad := map[string]string{"registrationToken": "nope", "name": "x", "email": "x@example.com", "password": "longpassw0rd"}
	status, body := s.do(t, http.MethodPost, "/api/auth/register", "", bad)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_REGISTRATION_TOKEN", body["code"])

	status, body = s.do(t, http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, status)
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "owner@example.com", user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, user, "isSetup")

	status, body = s.do(t, http.MethodPost, "/api/auth/register", "", req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "REGISTRATION_CLOSED", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores internos
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorInterno_OcultaDetalleFueraDeDevelopment(t *testing.T) {
	repo := memory.NewUserRepository()
	s := buildTestAppWith(t, brokenRepo{repo}, memory.NewTxRunner(repo), false)

	status, body := s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "Server error", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorInterno_ExponeDetalleEnDevelopment(t *testing.T) {
	repo := memory.NewUserRepository()
	s := buildTestAppWith(t, brokenRepo{repo}, memory.NewTxRunner(repo), true)

	status, body := s.do(t, http.MethodGet, "/api/auth/check-setup", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, errStoreDown.Error(), body["error"])
}

func TestRutaInexistente_Retorna404(t *testing.T) {
	s := buildTestApp(t)
	status, _ := s.do(t, http.MethodGet, "/api/auth/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
