package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/adminsetup-api/internal/application/dto"
	"github.com/jhoicas/adminsetup-api/internal/domain"
	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
	"github.com/jhoicas/adminsetup-api/pkg/password"
)

// AuthUseCase casos de uso de autenticación: login y verificación de token.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	tokens       *TokenIssuer
	defaultEmail string
	bcryptCost   int
	log          *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth. defaultEmail es el email de las credenciales por defecto;
// bcryptCost debe ser el mismo con el que se guardan las contraseñas.
func NewAuthUseCase(userRepo repository.UserRepository, tokens *TokenIssuer, defaultEmail string, bcryptCost int, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		tokens:       tokens,
		defaultEmail: defaultEmail,
		bcryptCost:   bcryptCost,
		log:          log.Component("auth"),
	}
}

// Login verifica email/password, exige rol admin, genera JWT y retorna token + admin.
// Usuario inexistente y password incorrecto devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son requeridos", domain.ErrValidation)
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Mismo trabajo de bcrypt que con un usuario existente.
		_, _ = password.Compare(uc.dummy(), in.Password)
		uc.log.Info().Str("outcome", "unknown_user").Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}
	ok, err := password.Compare(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.log.Info().Str("user_id", user.ID).Str("outcome", "bad_password").Msg("login rechazado")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsAdmin() {
		uc.log.Warn().Str("user_id", user.ID).Str("role", user.Role).Msg("login de usuario sin rol admin")
		return nil, domain.ErrForbidden
	}
	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("login correcto")
	return &dto.AuthResponse{
		Success: true,
		Token:   token,
		Admin:   toAdminResponse(user, uc.defaultEmail),
	}, nil
}

// Verify re-resuelve la identidad del token y reporta si ya dejó las credenciales por defecto.
// No exige rol admin: reporta el estado de cualquier identidad existente.
func (uc *AuthUseCase) Verify(ctx context.Context, userID string) (*dto.VerifyResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return &dto.VerifyResponse{
		Success: true,
		Admin:   toAdminResponse(user, uc.defaultEmail),
	}, nil
}

// dummy devuelve un hash fijo con el costo configurado, calculado una sola vez.
func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		h, err := password.Hash("no-user-placeholder", uc.bcryptCost)
		if err != nil {
			uc.log.Error().Err(err).Msg("hash de relleno para login")
			return
		}
		uc.dummyHash = h
	})
	return uc.dummyHash
}

// ResolveToken valida el token y devuelve el userID. Lo usa el AuthMiddleware.
func (uc *AuthUseCase) ResolveToken(token string) (string, error) {
	return uc.tokens.Resolve(token)
}

func toAdminResponse(u *entity.User, defaultEmail string) dto.AdminResponse {
	return dto.AdminResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		IsSetup: !entity.UsesDefaultCredentials(u.Email, defaultEmail),
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
