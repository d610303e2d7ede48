// Package errorcodes centraliza os códigos de erro usados pelos casos de uso.
// Os valores espelham os códigos expostos em pkg/apiErrors para que o
// mapeamento de status HTTP resolva sem tradução intermediária.
package errorcodes

const (
	// Autenticação
	ErrInvalidCredentials = "AUTH_001"
	ErrUserDisabled       = "AUTH_002"
	ErrUserNotFound       = "AUTH_003"
	ErrInvalidToken       = "AUTH_006"
	ErrExpiredToken       = "AUTH_007"
	ErrUserAlreadyExists  = "AUTH_009"

	// Validação de requisições
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	// Infraestrutura
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
)
