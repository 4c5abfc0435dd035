package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/adminsetup-api/internal/domain"
	"github.com/jhoicas/adminsetup-api/internal/domain/entity"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria del puerto UserRepository.
// Aplica bajo un único mutex las mismas restricciones que los índices únicos de PostgreSQL.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.User
	email map[string]string // email normalizado -> id
}

// NewUserRepository construye un store vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:  make(map[string]*entity.User),
		email: make(map[string]string),
	}
}

// Create inserta el usuario si el email está libre y, para rol admin, si no existe otro admin.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.IsAdmin() && r.adminLocked() != nil {
		return domain.ErrAdminAlreadyExists
	}
	key := entity.NormalizeEmail(user.Email)
	if _, taken := r.email[key]; taken {
		return domain.ErrEmailAlreadyExists
	}
	cp := *user
	cp.Email = key
	r.byID[cp.ID] = &cp
	r.email[key] = cp.ID
	return nil
}

// Update reemplaza el registro existente. Un email tomado por otro usuario deja el registro intacto.
// Devuelve domain.ErrIdentityNotFound si el ID ya no existe.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	key := entity.NormalizeEmail(user.Email)
	if owner, taken := r.email[key]; taken && owner != user.ID {
		return domain.ErrEmailAlreadyExists
	}
	if user.IsAdmin() && !current.IsAdmin() && r.adminLocked() != nil {
		return domain.ErrAdminAlreadyExists
	}
	delete(r.email, entity.NormalizeEmail(current.Email))
	cp := *user
	cp.Email = key
	r.byID[cp.ID] = &cp
	r.email[key] = cp.ID
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.byID[id]), nil
}

// GetByEmail obtiene un usuario por email normalizado.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.email[entity.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return clone(r.byID[id]), nil
}

// FindAdmin devuelve el único admin o nil.
func (r *UserRepo) FindAdmin(_ context.Context) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.adminLocked()), nil
}

// Len número de usuarios almacenados.
func (r *UserRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *UserRepo) adminLocked() *entity.User {
	for _, u := range r.byID {
		if u.IsAdmin() {
			return u
		}
	}
	return nil
}

func clone(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
