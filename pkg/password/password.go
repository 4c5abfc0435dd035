package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost costo bcrypt usado cuando la configuración no define otro.
const DefaultCost = 12

// Hash genera el hash bcrypt de plain. Toda ruta de escritura que cambie una contraseña debe llamarlo
// antes de persistir; el repositorio nunca recibe texto plano.
func Hash(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("password: costo bcrypt fuera de rango: %d", cost)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(h), nil
}

// Compare devuelve (true, nil) si plain corresponde al hash.
// Un hash corrupto se reporta como error para no confundirlo con una contraseña incorrecta.
func Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("password: comparar: %w", err)
}
