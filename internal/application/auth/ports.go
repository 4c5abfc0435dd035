package auth

import (
	"context"

	"github.com/jhoicas/adminsetup-api/internal/domain/repository"
)

// TxRunner ejecuta fn de forma atómica sobre el store de usuarios.
// Lo implementan postgres.TxRunner y memory.TxRunner.
type TxRunner interface {
	RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error
}
