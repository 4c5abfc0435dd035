package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/adminsetup-api/internal/domain"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx; los repos funcionan con cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Nombres de constraints definidos en migrations/00001_create_users.sql.
const (
	constraintUsersEmail  = "users_email_key"
	constraintSingleAdmin = "users_single_admin_idx"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// translateUniqueViolation convierte un 23505 en el error de dominio según el constraint.
// Devuelve nil si err no es una violación de unicidad conocida.
func translateUniqueViolation(err error) error {
	if !isUniqueViolation(err) {
		return nil
	}
	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	switch pgErr.ConstraintName {
	case constraintSingleAdmin:
		return domain.ErrAdminAlreadyExists
	case constraintUsersEmail:
		return domain.ErrEmailAlreadyExists
	}
	return nil
}
