package dto

// ErrorResponse cuerpo de error HTTP. Error es un mensaje apto para el cliente; Code es
// uno de los domain.ErrorKind.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
