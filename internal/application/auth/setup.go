package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/adminsetup-api/internal/application/dto"
	"github.com/jhoicas/adminsetup-api/internal/domain"
	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
	"github.com/jhoicas/adminsetup-api/pkg/logger"
	"github.com/jhoicas/adminsetup-api/pkg/password"
)

// MinPasswordLength longitud mínima de una contraseña elegida por el operador.
const MinPasswordLength = 8

// SetupConfig credenciales por defecto y secreto de registro, inyectados desde config.
type SetupConfig struct {
	DefaultEmail      string
	DefaultPassword   string
	DefaultName       string
	RegistrationToken string // vacío deshabilita Register
	BcryptCost        int
}

// SetupUseCase máquina de estados NoAdmin -> DefaultCredentials -> Secured.
type SetupUseCase struct {
	userRepo repository.UserRepository
	tx       TxRunner
	tokens   *TokenIssuer
	cfg      SetupConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewSetupUseCase construye el caso de uso de configuración inicial.
func NewSetupUseCase(userRepo repository.UserRepository, tx TxRunner, tokens *TokenIssuer, cfg SetupConfig, log *logger.Logger) *SetupUseCase {
	return &SetupUseCase{
		userRepo: userRepo,
		tx:       tx,
		tokens:   tokens,
		cfg:      cfg,
		log:      log.Component("setup"),
		now:      time.Now,
	}
}

// Status calcula el estado derivado actual. Nunca se cachea.
func (uc *SetupUseCase) Status(ctx context.Context) (entity.CredentialStatus, error) {
	admin, err := uc.userRepo.FindAdmin(ctx)
	if err != nil {
		return "", err
	}
	return entity.StatusFor(admin, uc.cfg.DefaultEmail), nil
}

// CheckStatus informa si existe admin y si aún usa las credenciales por defecto. Solo lectura.
func (uc *SetupUseCase) CheckStatus(ctx context.Context) (*dto.SetupStatusResponse, error) {
	status, err := uc.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SetupStatusResponse{}
	switch status {
	case entity.StatusNoAdmin:
		out.DefaultCredentials = uc.defaultCredentials()
	case entity.StatusDefaultCredentials:
		out.SetupComplete = true
		out.NeedsCredentialSetup = true
		out.DefaultCredentials = uc.defaultCredentials()
	case entity.StatusSecured:
		out.SetupComplete = true
	}
	return out, nil
}

// Bootstrap crea el admin con las credenciales por defecto (NoAdmin -> DefaultCredentials).
// La lectura previa solo evita el hash en el caso común; la garantía la da el índice único del store.
func (uc *SetupUseCase) Bootstrap(ctx context.Context) (*dto.AuthResponse, error) {
	admin, err := uc.createDefaultAdmin(ctx)
	if err != nil {
		return nil, err
	}
	token, err := uc.tokens.Issue(admin.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Message: "Initial setup completed - please change default credentials",
		Token:   token,
		Admin:   toAdminResponse(admin, uc.cfg.DefaultEmail),
	}, nil
}

// CreateAdmin variante legacy de Bootstrap que no emite token.
func (uc *SetupUseCase) CreateAdmin(ctx context.Context) (*dto.MessageResponse, error) {
	if _, err := uc.createDefaultAdmin(ctx); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Admin created successfully"}, nil
}

func (uc *SetupUseCase) createDefaultAdmin(ctx context.Context) (*entity.User, error) {
	existing, err := uc.userRepo.FindAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSetupAlreadyComplete
	}
	admin, err := uc.newAdmin(uc.cfg.DefaultName, uc.cfg.DefaultEmail, uc.cfg.DefaultPassword)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			uc.log.Warn().Err(err).Msg("bootstrap rechazado por el store")
			return nil, domain.ErrSetupAlreadyComplete
		}
		// Un bootstrap concurrente puede chocar primero con el email por defecto. Solo es "ya completado"
		// si el ganador dejó un admin; si el email lo tiene otra identidad el conflicto se devuelve tal cual.
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			winner, ferr := uc.userRepo.FindAdmin(ctx)
			if ferr != nil {
				return nil, ferr
			}
			if winner != nil {
				uc.log.Warn().Err(err).Msg("bootstrap rechazado por el store")
				return nil, domain.ErrSetupAlreadyComplete
			}
			uc.log.Error().Str("email", admin.Email).Msg("el email por defecto pertenece a un usuario no admin")
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", admin.ID).Msg("admin inicial creado con credenciales por defecto")
	return admin, nil
}

// CompleteSetup reemplaza email y password del admin (DefaultCredentials -> Secured) y emite un token nuevo.
// Si la actualización falla el registro queda intacto.
func (uc *SetupUseCase) CompleteSetup(ctx context.Context, actingUserID string, in dto.CompleteSetupRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.NewUsername)
	if email == "" || in.NewPassword == "" {
		return nil, fmt.Errorf("%w: nuevo usuario y contraseña son requeridos", domain.ErrValidation)
	}
	if entity.UsesDefaultCredentials(email, uc.cfg.DefaultEmail) {
		return nil, fmt.Errorf("%w: el nuevo usuario no puede ser el email por defecto", domain.ErrValidation)
	}
	if err := validatePassword(in.NewPassword); err != nil {
		return nil, err
	}
	newName := strings.TrimSpace(in.NewName)
	hash, err := password.Hash(in.NewPassword, uc.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	var updated *entity.User
	err = uc.tx.RunUsers(ctx, func(users repository.UserRepository) error {
		admin, err := users.GetByID(ctx, actingUserID)
		if err != nil {
			return err
		}
		if admin == nil {
			return domain.ErrAdminNotFound
		}
		if !admin.IsAdmin() {
			return domain.ErrForbidden
		}
		admin.Email = email
		admin.PasswordHash = hash
		if newName != "" {
			admin.Name = newName
		}
		admin.UpdatedAt = uc.now()
		if err := users.Update(ctx, admin); err != nil {
			if errors.Is(err, domain.ErrIdentityNotFound) {
				return domain.ErrAdminNotFound
			}
			return err
		}
		updated = admin
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Issue(updated.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", updated.ID).Msg("credenciales del admin actualizadas")
	return &dto.AuthResponse{
		Success: true,
		Message: "Setup completed successfully",
		Token:   token,
		Admin:   toAdminResponse(updated, uc.cfg.DefaultEmail),
	}, nil
}

// Register ruta legacy: crea el admin con datos del llamante si el secreto coincide y aún no hay admin.
func (uc *SetupUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !uc.registrationTokenMatches(in.RegistrationToken) {
		return nil, domain.ErrInvalidRegistrationToken
	}
	existing, err := uc.userRepo.FindAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRegistrationClosed
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || entity.NormalizeEmail(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email y password son requeridos", domain.ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	admin, err := uc.newAdmin(name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrAdminAlreadyExists) {
			return nil, domain.ErrRegistrationClosed
		}
		return nil, err
	}
	token, err := uc.tokens.Issue(admin.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", admin.ID).Msg("admin registrado por ruta legacy")
	return &dto.RegisterResponse{
		Success: true,
		Message: "Admin registered successfully",
		Token:   token,
		User:    toUserResponse(admin),
	}, nil
}

func (uc *SetupUseCase) newAdmin(name, email, plain string) (*entity.User, error) {
	hash, err := password.Hash(plain, uc.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        entity.NormalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (uc *SetupUseCase) defaultCredentials() *dto.DefaultCredentials {
	return &dto.DefaultCredentials{Username: uc.cfg.DefaultEmail, Password: uc.cfg.DefaultPassword}
}

// registrationTokenMatches compara en tiempo constante. Un secreto no configurado nunca coincide.
func (uc *SetupUseCase) registrationTokenMatches(given string) bool {
	want := uc.cfg.RegistrationToken
	if want == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}

func validatePassword(p string) error {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrValidation, MinPasswordLength)
	}
	return nil
}
