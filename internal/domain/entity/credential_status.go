package entity

// CredentialStatus es el estado derivado del proceso de configuración. Nunca se persiste.
type CredentialStatus string

const (
	StatusNoAdmin            CredentialStatus = "no_admin"
	StatusDefaultCredentials CredentialStatus = "default_credentials"
	StatusSecured            CredentialStatus = "secured"
)

// UsesDefaultCredentials compara el email actual con el email por defecto conocido.
func UsesDefaultCredentials(email, defaultEmail string) bool {
	return NormalizeEmail(email) == NormalizeEmail(defaultEmail)
}

// StatusFor calcula el estado a partir del admin actual (nil si no existe).
// NoAdmin -> DefaultCredentials -> Secured; no hay transición de vuelta.
func StatusFor(admin *User, defaultEmail string) CredentialStatus {
	if admin == nil {
		return StatusNoAdmin
	}
	if UsesDefaultCredentials(admin.Email, defaultEmail) {
		return StatusDefaultCredentials
	}
	return StatusSecured
}
