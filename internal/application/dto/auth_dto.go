package dto

// DefaultCredentials par por defecto mostrado mientras el admin no lo haya cambiado.
type DefaultCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupStatusResponse salida de check-setup. DefaultCredentials se serializa como null cuando no aplica.
type SetupStatusResponse struct {
	SetupComplete        bool                `json:"setupComplete"`
	NeedsCredentialSetup bool                `json:"needsCredentialSetup"`
	DefaultCredentials   *DefaultCredentials `json:"defaultCredentials"`
}

// AdminResponse identidad devuelta por setup, complete-setup, login y verify (sin password).
type AdminResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsSetup bool   `json:"isSetup"`
}

// AuthResponse salida con token JWT y admin.
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token"`
	Admin   AdminResponse `json:"admin"`
}

// VerifyResponse salida de verify.
type VerifyResponse struct {
	Success bool          `json:"success"`
	Admin   AdminResponse `json:"admin"`
}

// CompleteSetupRequest nuevas credenciales del admin. NewName es opcional.
type CompleteSetupRequest struct {
	NewUsername string `json:"newUsername" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
	NewName     string `json:"newName" validate:"omitempty,max=200"`
}

// LoginRequest entrada para login. Username es el email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada del registro legacy protegido por secreto.
type RegisterRequest struct {
	RegistrationToken string `json:"registrationToken" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterResponse salida del registro legacy.
type RegisterResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
