package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/adminsetup-api/internal/application/auth"
	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
)

var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner serializa los callbacks sobre el store en memoria. No hay rollback:
// los callbacks de auth solo escriben en su último paso.
type TxRunner struct {
	mu    sync.Mutex
	users *UserRepo
}

// NewTxRunner construye el runner sobre el repo dado.
func NewTxRunner(users *UserRepo) *TxRunner {
	return &TxRunner{users: users}
}

// RunUsers ejecuta fn con el repo mientras mantiene el lock del runner.
func (r *TxRunner) RunUsers(_ context.Context, fn func(users repository.UserRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.users)
}
