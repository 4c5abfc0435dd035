package auth

import (
	"errors"
	"fmt"

	"github.com/jhoicas/adminsetup-api/internal/domain"
	"github.com/jhoicas/adminsetup-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// TokenIssuer emite y resuelve tokens de identidad. No guarda estado: un token vale
// hasta su expiración aunque la contraseña cambie.
type TokenIssuer struct {
	cfg JWTConfig
}

// NewTokenIssuer construye el emisor. Falla si el secreto está vacío.
func NewTokenIssuer(cfg JWTConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("auth: secreto JWT vacío")
	}
	return &TokenIssuer{cfg: cfg}, nil
}

// Issue firma un token para userID con la vigencia fija de jwt.TokenTTL.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	tok, err := jwt.Generate(t.cfg.Secret, userID, t.cfg.Issuer, jwt.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("emitir token: %w", err)
	}
	return tok, nil
}

// Resolve valida firma y expiración y devuelve el userID. Cualquier fallo es domain.ErrInvalidToken.
func (t *TokenIssuer) Resolve(token string) (string, error) {
	userID, err := jwt.Parse(t.cfg.Secret, t.cfg.Issuer, token)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}
	return userID, nil
}
