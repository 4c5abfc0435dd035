package auth

// DummyHash expone el hash de relleno de Login para los tests.
func DummyHash(uc *AuthUseCase) string { return uc.dummyHash }
