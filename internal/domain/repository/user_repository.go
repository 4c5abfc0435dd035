package repository

import (
	"context"

	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Contrato de unicidad:
//   - Create/Update devuelven domain.ErrEmailAlreadyExists si el email ya pertenece a otro usuario.
//   - Create devuelve domain.ErrAdminAlreadyExists si se intenta insertar un segundo admin.
//     Esta garantía la da el store de forma atómica, no una lectura previa.
//
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAdmin(ctx context.Context) (*entity.User, error)
}
