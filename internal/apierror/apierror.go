// Package apierror provee las envolturas de error estándar de la API.
// Toda respuesta 4xx/5xx pasa por acá: consistencia hacia el cliente y cero
// filtración de detalles internos (stack traces, errores de driver, etc.).
package apierror

// APIError es la envoltura canónica de error.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa errores por campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
